package events

import (
	"context"
	"time"
)

const (
	TypeLogin    = "login"
	TypeRegister = "register"
	TypeLogout   = "logout"
	TypeExpired  = "expired"
)

type SessionEvent struct {
	Type   string    `json:"type"`
	Role   string    `json:"role,omitempty"`
	UserID int64     `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher delivers session events. Implementations must not block the caller
// on the network.
type Publisher interface {
	Publish(ctx context.Context, ev SessionEvent) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SessionEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
