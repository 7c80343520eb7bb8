package api

import (
	"context"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/transport"
)

type Users struct {
	gw *gateway.Client
}

func (u *Users) Me(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := u.gw.Get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) UpdateMe(ctx context.Context, in transport.UserUpdate) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := u.gw.Put(ctx, "/users/me", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Stats(ctx context.Context) (*transport.UserStats, error) {
	var out transport.UserStats
	if err := u.gw.Get(ctx, "/users/me/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Heal restores full HP for gold; the server rejects it when already at
// full health or short of gold.
func (u *Users) Heal(ctx context.Context) (*transport.HealResult, error) {
	var out transport.HealResult
	if err := u.gw.Post(ctx, "/users/me/heal", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := u.gw.Get(ctx, "/users/"+id(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Teachers struct {
	gw *gateway.Client
}

func (t *Teachers) Me(ctx context.Context) (*models.TeacherProfile, error) {
	var out models.TeacherProfile
	if err := t.gw.Get(ctx, "/teachers/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
