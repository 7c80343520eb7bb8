package storage

import (
	"context"
	"errors"
	"fmt"
)

// Keys kept in every scope.
const (
	KeyToken = "token"
	KeyRole  = "role"
	// KeyUser is a legacy cached-identity entry; it is only ever cleared.
	KeyUser = "user"
)

var ErrNotFound = errors.New("key not found")

// Scope is a string key-value namespace with its own lifetime.
type Scope interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Policy selects which scope a credential is persisted to.
type Policy int

const (
	// Ephemeral lives as long as the process.
	Ephemeral Policy = iota
	// Durable survives restarts.
	Durable
)

func (p Policy) String() string {
	switch p {
	case Durable:
		return "durable"
	case Ephemeral:
		return "ephemeral"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// PolicyFor maps the "remember me" choice to a policy.
func PolicyFor(remember bool) Policy {
	if remember {
		return Durable
	}
	return Ephemeral
}
