// Package api exposes typed calls for every Quest Academy resource. All of
// them go through the gateway, so they carry the session credential and end
// the session on 401 like any other request.
package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
)

type Client struct {
	Users         *Users
	Teachers      *Teachers
	Worlds        *Worlds
	Zones         *Zones
	Quests        *Quests
	Monsters      *Monsters
	Battle        *Battle
	Progress      *Progress
	Inventory     *Inventory
	Achievements  *Achievements
	Leaderboard   *Leaderboard
	Submissions   *Submissions
	Assignments   *Assignments
	Engagement    *Engagement
	Notifications *Notifications
	Uploads       *Uploads
	Admin         *Admin
}

func New(gw *gateway.Client) *Client {
	return &Client{
		Users:         &Users{gw: gw},
		Teachers:      &Teachers{gw: gw},
		Worlds:        &Worlds{gw: gw},
		Zones:         &Zones{gw: gw},
		Quests:        &Quests{gw: gw},
		Monsters:      &Monsters{gw: gw},
		Battle:        &Battle{gw: gw},
		Progress:      &Progress{gw: gw},
		Inventory:     &Inventory{gw: gw},
		Achievements:  &Achievements{gw: gw},
		Leaderboard:   &Leaderboard{gw: gw},
		Submissions:   &Submissions{gw: gw},
		Assignments:   &Assignments{gw: gw},
		Engagement:    &Engagement{gw: gw},
		Notifications: &Notifications{gw: gw},
		Uploads:       &Uploads{gw: gw},
		Admin:         &Admin{gw: gw},
	}
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func getOne[T any](ctx context.Context, gw *gateway.Client, path string, q url.Values) (*T, error) {
	var out T
	if err := gw.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getList[T any](ctx context.Context, gw *gateway.Client, path string, q url.Values) ([]T, error) {
	var out []T
	if err := gw.Get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func post[T any](ctx context.Context, gw *gateway.Client, path string, in any) (*T, error) {
	var out T
	if err := gw.Post(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func put[T any](ctx context.Context, gw *gateway.Client, path string, in any) (*T, error) {
	var out T
	if err := gw.Put(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
