package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/quest_academy/internal/models"
)

// Credentials keeps at most one (token, role) pair across the durable and
// ephemeral scopes. Lookups check the durable scope first.
type Credentials struct {
	durable   Scope
	ephemeral Scope
}

func NewCredentials(durable, ephemeral Scope) *Credentials {
	return &Credentials{durable: durable, ephemeral: ephemeral}
}

func (c *Credentials) Scope(p Policy) Scope {
	if p == Durable {
		return c.durable
	}
	return c.ephemeral
}

func (c *Credentials) Save(ctx context.Context, p Policy, cred models.Credential) error {
	if cred.Token == "" {
		return errors.New("empty token")
	}

	other := Durable
	if p == Durable {
		other = Ephemeral
	}
	if err := c.Scope(other).Delete(ctx, KeyToken, KeyRole, KeyUser); err != nil {
		return fmt.Errorf("clear %s scope: %w", other, err)
	}

	target := c.Scope(p)
	if err := target.Set(ctx, KeyToken, cred.Token); err != nil {
		return fmt.Errorf("write %s token: %w", p, err)
	}
	if err := target.Set(ctx, KeyRole, string(cred.Role)); err != nil {
		return fmt.Errorf("write %s role: %w", p, err)
	}
	return nil
}

// Load returns the persisted credential and the scope it was found in, or
// ErrNotFound. The role comes from the same scope as the token.
func (c *Credentials) Load(ctx context.Context) (models.Credential, Policy, error) {
	for _, p := range []Policy{Durable, Ephemeral} {
		s := c.Scope(p)
		token, err := s.Get(ctx, KeyToken)
		if errors.Is(err, ErrNotFound) || (err == nil && token == "") {
			continue
		}
		if err != nil {
			return models.Credential{}, p, fmt.Errorf("read %s token: %w", p, err)
		}

		role, err := s.Get(ctx, KeyRole)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return models.Credential{}, p, fmt.Errorf("read %s role: %w", p, err)
		}
		return models.Credential{Token: token, Role: models.RoleOrDefault(role)}, p, nil
	}
	return models.Credential{}, Ephemeral, ErrNotFound
}

// Token returns the bearer token or "" when nobody is logged in.
func (c *Credentials) Token(ctx context.Context) (string, error) {
	cred, _, err := c.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

// Clear erases token, role and cached identity from both scopes.
func (c *Credentials) Clear(ctx context.Context) error {
	return errors.Join(
		c.durable.Delete(ctx, KeyToken, KeyRole, KeyUser),
		c.ephemeral.Delete(ctx, KeyToken, KeyRole, KeyUser),
	)
}
