package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/transport"
)

type Worlds struct {
	gw *gateway.Client
}

// List returns worlds; teachers pass publishedOnly=false to see drafts.
func (w *Worlds) List(ctx context.Context, publishedOnly bool) ([]transport.World, error) {
	q := url.Values{"published_only": {strconv.FormatBool(publishedOnly)}}
	return getList[transport.World](ctx, w.gw, "/worlds/", q)
}

func (w *Worlds) Get(ctx context.Context, worldID int64) (*transport.World, error) {
	return getOne[transport.World](ctx, w.gw, "/worlds/"+id(worldID), nil)
}

func (w *Worlds) Create(ctx context.Context, in transport.WorldInput) (*transport.World, error) {
	return post[transport.World](ctx, w.gw, "/worlds/", in)
}

func (w *Worlds) Update(ctx context.Context, worldID int64, in transport.WorldInput) (*transport.World, error) {
	return put[transport.World](ctx, w.gw, "/worlds/"+id(worldID), in)
}

func (w *Worlds) Delete(ctx context.Context, worldID int64) error {
	return w.gw.Delete(ctx, "/worlds/"+id(worldID), nil)
}

type Zones struct {
	gw *gateway.Client
}

func (z *Zones) ByWorld(ctx context.Context, worldID int64) ([]transport.Zone, error) {
	return getList[transport.Zone](ctx, z.gw, "/zones/world/"+id(worldID), nil)
}

func (z *Zones) Get(ctx context.Context, zoneID int64) (*transport.Zone, error) {
	return getOne[transport.Zone](ctx, z.gw, "/zones/"+id(zoneID), nil)
}

func (z *Zones) Create(ctx context.Context, in transport.ZoneInput) (*transport.Zone, error) {
	return post[transport.Zone](ctx, z.gw, "/zones", in)
}

func (z *Zones) Update(ctx context.Context, zoneID int64, in transport.ZoneInput) (*transport.Zone, error) {
	return put[transport.Zone](ctx, z.gw, "/zones/"+id(zoneID), in)
}

func (z *Zones) Delete(ctx context.Context, zoneID int64) error {
	return z.gw.Delete(ctx, "/zones/"+id(zoneID), nil)
}

type Quests struct {
	gw *gateway.Client
}

func (q *Quests) ByZone(ctx context.Context, zoneID int64) ([]transport.Quest, error) {
	return getList[transport.Quest](ctx, q.gw, "/quests/zone/"+id(zoneID), nil)
}

func (q *Quests) Get(ctx context.Context, questID int64) (*transport.Quest, error) {
	return getOne[transport.Quest](ctx, q.gw, "/quests/"+id(questID), nil)
}

// Complete marks the quest done for the current student. The reward payload
// is server-defined.
func (q *Quests) Complete(ctx context.Context, questID int64) (map[string]any, error) {
	var out map[string]any
	if err := q.gw.Post(ctx, "/quests/"+id(questID)+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (q *Quests) Create(ctx context.Context, in transport.QuestInput) (*transport.Quest, error) {
	return post[transport.Quest](ctx, q.gw, "/quests", in)
}

func (q *Quests) Update(ctx context.Context, questID int64, in transport.QuestInput) (*transport.Quest, error) {
	return put[transport.Quest](ctx, q.gw, "/quests/"+id(questID), in)
}

func (q *Quests) Delete(ctx context.Context, questID int64) error {
	return q.gw.Delete(ctx, "/quests/"+id(questID), nil)
}

type Monsters struct {
	gw *gateway.Client
}

func (m *Monsters) Battle(ctx context.Context, monsterID int64) (*transport.MonsterBattle, error) {
	return getOne[transport.MonsterBattle](ctx, m.gw, "/monsters/"+id(monsterID)+"/battle", nil)
}

func (m *Monsters) Answer(ctx context.Context, monsterID int64, answer string) (*transport.BattleResult, error) {
	in := transport.MonsterAnswer{MonsterID: monsterID, SelectedAnswer: answer}
	return post[transport.BattleResult](ctx, m.gw, "/monsters/"+id(monsterID)+"/battle", in)
}

func (m *Monsters) Create(ctx context.Context, in transport.MonsterInput) (*transport.Monster, error) {
	return post[transport.Monster](ctx, m.gw, "/monsters", in)
}

func (m *Monsters) Update(ctx context.Context, monsterID int64, in transport.MonsterInput) (*transport.Monster, error) {
	return put[transport.Monster](ctx, m.gw, "/monsters/"+id(monsterID), in)
}

func (m *Monsters) Delete(ctx context.Context, monsterID int64) error {
	return m.gw.Delete(ctx, "/monsters/"+id(monsterID), nil)
}
