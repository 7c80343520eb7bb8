package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/transport"
	"github.com/Skotchmaster/quest_academy/internal/util"
)

type Battle struct {
	gw *gateway.Client
}

func (b *Battle) State(ctx context.Context, monsterID int64) (*transport.BattleState, error) {
	return getOne[transport.BattleState](ctx, b.gw, "/battle/"+id(monsterID), nil)
}

func (b *Battle) Attack(ctx context.Context, in transport.Attack) (*transport.AttackResult, error) {
	return post[transport.AttackResult](ctx, b.gw, "/battle/attack", in)
}

type Progress struct {
	gw *gateway.Client
}

func (p *Progress) Mine(ctx context.Context) ([]transport.Progress, error) {
	return getList[transport.Progress](ctx, p.gw, "/progress", nil)
}

func (p *Progress) Completed(ctx context.Context) ([]transport.Progress, error) {
	return getList[transport.Progress](ctx, p.gw, "/progress/completed", nil)
}

func (p *Progress) Stats(ctx context.Context) (*transport.ProgressStats, error) {
	return getOne[transport.ProgressStats](ctx, p.gw, "/progress/stats", nil)
}

func (p *Progress) ByWorld(ctx context.Context, worldID int64) ([]transport.Progress, error) {
	return getList[transport.Progress](ctx, p.gw, "/progress/world/"+id(worldID), nil)
}

// Transcript is the server-rendered academic record.
func (p *Progress) Transcript(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := p.gw.Get(ctx, "/progress/transcript", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Inventory struct {
	gw *gateway.Client
}

func (i *Inventory) Shop(ctx context.Context) ([]transport.Item, error) {
	return getList[transport.Item](ctx, i.gw, "/inventory/shop", nil)
}

func (i *Inventory) Mine(ctx context.Context) ([]transport.InventoryEntry, error) {
	return getList[transport.InventoryEntry](ctx, i.gw, "/inventory/my", nil)
}

func (i *Inventory) Equipped(ctx context.Context) ([]transport.InventoryEntry, error) {
	return getList[transport.InventoryEntry](ctx, i.gw, "/inventory/equipped", nil)
}

func (i *Inventory) Buy(ctx context.Context, itemID int64, quantity int) (map[string]any, error) {
	if quantity < 1 {
		quantity = 1
	}
	var out map[string]any
	if err := i.gw.Post(ctx, "/inventory/buy", transport.Purchase{ItemID: itemID, Quantity: quantity}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (i *Inventory) Equip(ctx context.Context, itemID int64, equip bool) (map[string]any, error) {
	var out map[string]any
	if err := i.gw.Post(ctx, "/inventory/equip", transport.Equip{ItemID: itemID, Equip: equip}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (i *Inventory) Use(ctx context.Context, itemID int64) (map[string]any, error) {
	var out map[string]any
	if err := i.gw.Post(ctx, "/inventory/use/"+id(itemID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type Achievements struct {
	gw *gateway.Client
}

func (a *Achievements) All(ctx context.Context) ([]transport.Achievement, error) {
	return getList[transport.Achievement](ctx, a.gw, "/achievements", nil)
}

func (a *Achievements) Mine(ctx context.Context) ([]transport.UserAchievement, error) {
	return getList[transport.UserAchievement](ctx, a.gw, "/achievements/my", nil)
}

func (a *Achievements) Progress(ctx context.Context) (*transport.AchievementProgress, error) {
	return getOne[transport.AchievementProgress](ctx, a.gw, "/achievements/progress", nil)
}

type Leaderboard struct {
	gw *gateway.Client
}

func window(limit, offset int) url.Values {
	limit, offset = util.Window(limit, offset)
	return url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
}

func (l *Leaderboard) Global(ctx context.Context, limit, offset int) ([]transport.LeaderboardEntry, error) {
	return getList[transport.LeaderboardEntry](ctx, l.gw, "/leaderboard", window(limit, offset))
}

func (l *Leaderboard) ByWorld(ctx context.Context, worldID int64, limit, offset int) ([]transport.LeaderboardEntry, error) {
	return getList[transport.LeaderboardEntry](ctx, l.gw, "/leaderboard/world/"+id(worldID), window(limit, offset))
}

// MyRank returns the global rank when worldID is 0.
func (l *Leaderboard) MyRank(ctx context.Context, worldID int64) (*transport.Rank, error) {
	var q url.Values
	if worldID != 0 {
		q = url.Values{"world_id": {id(worldID)}}
	}
	return getOne[transport.Rank](ctx, l.gw, "/leaderboard/my-rank", q)
}

type Engagement struct {
	gw *gateway.Client
}

func (e *Engagement) Dashboard(ctx context.Context) (*transport.EngagementDashboard, error) {
	return getOne[transport.EngagementDashboard](ctx, e.gw, "/engagement/dashboard", nil)
}

func (e *Engagement) MiniLeaderboard(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := e.gw.Get(ctx, "/engagement/leaderboard/mini", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engagement) LogActivity(ctx context.Context, a transport.Activity) error {
	q := url.Values{
		"activity_type": {a.Type},
		"title":         {a.Title},
		"xp":            {strconv.Itoa(a.XP)},
		"gold":          {strconv.Itoa(a.Gold)},
	}
	var out transport.Status
	return e.gw.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/engagement/activity/log", Query: q}, &out)
}
