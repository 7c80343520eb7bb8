package api

import (
	"context"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/transport"
)

// Admin wraps the /admin CRUD endpoints. Bodies and listings are passed
// through as loose JSON objects; the server owns their shape.
type Admin struct {
	gw *gateway.Client
}

type Object = map[string]any

func (a *Admin) Dashboard(ctx context.Context) (Object, error) {
	var out Object
	if err := a.gw.Get(ctx, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) list(ctx context.Context, path string) ([]Object, error) {
	return getList[Object](ctx, a.gw, path, nil)
}

func (a *Admin) create(ctx context.Context, path string, in Object) (Object, error) {
	var out Object
	if err := a.gw.Post(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) update(ctx context.Context, path string, in Object) (Object, error) {
	var out Object
	if err := a.gw.Put(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) Users(ctx context.Context) ([]Object, error) { return a.list(ctx, "/admin/users") }

func (a *Admin) CreateUser(ctx context.Context, in Object) (Object, error) {
	return a.create(ctx, "/admin/users", in)
}

func (a *Admin) UpdateUser(ctx context.Context, userID int64, in Object) (Object, error) {
	return a.update(ctx, "/admin/users/"+id(userID), in)
}

func (a *Admin) DeleteUser(ctx context.Context, userID int64) error {
	return a.gw.Delete(ctx, "/admin/users/"+id(userID), nil)
}

func (a *Admin) Teachers(ctx context.Context) ([]Object, error) {
	return a.list(ctx, "/admin/teachers")
}

func (a *Admin) CreateTeacher(ctx context.Context, in Object) (Object, error) {
	return a.create(ctx, "/admin/teachers", in)
}

func (a *Admin) DeleteTeacher(ctx context.Context, teacherID int64) error {
	return a.gw.Delete(ctx, "/admin/teachers/"+id(teacherID), nil)
}

func (a *Admin) CreateWorld(ctx context.Context, in transport.WorldInput) (*transport.World, error) {
	return post[transport.World](ctx, a.gw, "/admin/worlds", in)
}

func (a *Admin) UpdateWorld(ctx context.Context, worldID int64, in transport.WorldInput) (*transport.World, error) {
	return put[transport.World](ctx, a.gw, "/admin/worlds/"+id(worldID), in)
}

func (a *Admin) DeleteWorld(ctx context.Context, worldID int64) error {
	return a.gw.Delete(ctx, "/admin/worlds/"+id(worldID), nil)
}

func (a *Admin) Items(ctx context.Context) ([]transport.Item, error) {
	return getList[transport.Item](ctx, a.gw, "/admin/items", nil)
}

func (a *Admin) CreateItem(ctx context.Context, in Object) (Object, error) {
	return a.create(ctx, "/admin/items", in)
}

func (a *Admin) UpdateItem(ctx context.Context, itemID int64, in Object) (Object, error) {
	return a.update(ctx, "/admin/items/"+id(itemID), in)
}

func (a *Admin) DeleteItem(ctx context.Context, itemID int64) error {
	return a.gw.Delete(ctx, "/admin/items/"+id(itemID), nil)
}

func (a *Admin) Leaderboard(ctx context.Context) ([]transport.LeaderboardEntry, error) {
	return getList[transport.LeaderboardEntry](ctx, a.gw, "/admin/leaderboard", nil)
}

func (a *Admin) RecalculateLeaderboard(ctx context.Context) (Object, error) {
	var out Object
	if err := a.gw.Post(ctx, "/admin/leaderboard/recalculate", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) Inventories(ctx context.Context) ([]Object, error) {
	return a.list(ctx, "/admin/inventory")
}

func (a *Admin) Grant(ctx context.Context, in transport.Grant) (Object, error) {
	var out Object
	if err := a.gw.Post(ctx, "/admin/inventory/grant", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) RemoveInventory(ctx context.Context, inventoryID int64) error {
	return a.gw.Delete(ctx, "/admin/inventory/"+id(inventoryID), nil)
}
