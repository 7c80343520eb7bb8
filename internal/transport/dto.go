// Package transport holds the wire shapes of the Quest Academy API outside
// the auth core. Field names follow the server's snake_case JSON.
package transport

import "github.com/Skotchmaster/quest_academy/internal/models"

type Message struct {
	Message string `json:"message"`
}

type UserUpdate struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	AvatarClass *string `json:"avatar_class,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type UserStats struct {
	Level       int     `json:"level"`
	CurrentXP   int     `json:"current_xp"`
	HPCurrent   int     `json:"hp_current"`
	HPMax       int     `json:"hp_max"`
	Gold        int     `json:"gold"`
	AvatarClass string  `json:"avatar_class"`
	Title       *string `json:"title"`
}

type HealResult struct {
	Message       string `json:"message"`
	HPCurrent     int    `json:"hp_current"`
	HPMax         int    `json:"hp_max"`
	GoldRemaining int    `json:"gold_remaining"`
}

type ZoneSummary struct {
	ZoneID     int64  `json:"zone_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
	IsLocked   bool   `json:"is_locked"`
}

type World struct {
	WorldID         int64            `json:"world_id"`
	TeacherID       *int64           `json:"teacher_id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	DifficultyLevel string           `json:"difficulty_level"`
	ThemePrompt     *string          `json:"theme_prompt"`
	ThumbnailURL    *string          `json:"thumbnail_url"`
	IsPublished     bool             `json:"is_published"`
	RequiredClass   *string          `json:"required_class"`
	CreatedAt       models.Timestamp `json:"created_at"`
	ZonesCount      int              `json:"zones_count"`
	Zones           []ZoneSummary    `json:"zones,omitempty"`
}

type WorldInput struct {
	Title           string  `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	DifficultyLevel string  `json:"difficulty_level,omitempty"`
	ThemePrompt     *string `json:"theme_prompt,omitempty"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty"`
	IsPublished     *bool   `json:"is_published,omitempty"`
	RequiredClass   *string `json:"required_class,omitempty"`
}

type QuestSummary struct {
	QuestID    int64  `json:"quest_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
	XPReward   int    `json:"xp_reward"`
	GoldReward int    `json:"gold_reward"`
}

type Zone struct {
	ZoneID              int64            `json:"zone_id"`
	WorldID             int64            `json:"world_id"`
	Title               string           `json:"title"`
	Description         *string          `json:"description"`
	OrderIndex          int              `json:"order_index"`
	IsLocked            bool             `json:"is_locked"`
	UnlockRequirementXP int              `json:"unlock_requirement_xp"`
	CreatedAt           models.Timestamp `json:"created_at"`
	Quests              []QuestSummary   `json:"quests,omitempty"`
}

type ZoneInput struct {
	WorldID             int64   `json:"world_id,omitempty"`
	Title               string  `json:"title,omitempty"`
	Description         *string `json:"description,omitempty"`
	OrderIndex          *int    `json:"order_index,omitempty"`
	IsLocked            *bool   `json:"is_locked,omitempty"`
	UnlockRequirementXP *int    `json:"unlock_requirement_xp,omitempty"`
}

type MonsterSummary struct {
	MonsterID int64  `json:"monster_id"`
	Name      string `json:"name"`
	MonsterHP int    `json:"monster_hp"`
}

type AssignmentSummary struct {
	AssignmentID int64  `json:"assignment_id"`
	Title        string `json:"title"`
	MaxScore     int    `json:"max_score"`
}

type Quest struct {
	QuestID           int64               `json:"quest_id"`
	ZoneID            int64               `json:"zone_id"`
	Title             string              `json:"title"`
	ContentURL        *string             `json:"content_url"`
	XPReward          int                 `json:"xp_reward"`
	GoldReward        int                 `json:"gold_reward"`
	AINarrativePrompt *string             `json:"ai_narrative_prompt"`
	OrderIndex        int                 `json:"order_index"`
	CreatedAt         models.Timestamp    `json:"created_at"`
	Monsters          []MonsterSummary    `json:"monsters"`
	Assignments       []AssignmentSummary `json:"assignments"`
	IsCompleted       bool                `json:"is_completed"`
}

type QuestInput struct {
	ZoneID            int64   `json:"zone_id,omitempty"`
	Title             string  `json:"title,omitempty"`
	ContentURL        *string `json:"content_url,omitempty"`
	XPReward          *int    `json:"xp_reward,omitempty"`
	GoldReward        *int    `json:"gold_reward,omitempty"`
	AINarrativePrompt *string `json:"ai_narrative_prompt,omitempty"`
	OrderIndex        *int    `json:"order_index,omitempty"`
}

type Monster struct {
	MonsterID            int64            `json:"monster_id"`
	QuestID              int64            `json:"quest_id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description"`
	QuestionText         string           `json:"question_text"`
	CorrectAnswer        string           `json:"correct_answer"`
	WrongOptions         []string         `json:"wrong_options"`
	DamagePerWrongAnswer int              `json:"damage_per_wrong_answer"`
	MonsterHP            int              `json:"monster_hp"`
	MonsterImageURL      *string          `json:"monster_image_url"`
	CreatedAt            models.Timestamp `json:"created_at"`
}

type MonsterInput struct {
	QuestID              int64    `json:"quest_id,omitempty"`
	Name                 string   `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	QuestionText         string   `json:"question_text,omitempty"`
	CorrectAnswer        string   `json:"correct_answer,omitempty"`
	WrongOptions         []string `json:"wrong_options,omitempty"`
	DamagePerWrongAnswer *int     `json:"damage_per_wrong_answer,omitempty"`
	MonsterHP            *int     `json:"monster_hp,omitempty"`
	MonsterImageURL      *string  `json:"monster_image_url,omitempty"`
}

// MonsterBattle is a monster with its options shuffled by the server.
type MonsterBattle struct {
	MonsterID       int64    `json:"monster_id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options"`
	MonsterHP       int      `json:"monster_hp"`
	MonsterImageURL *string  `json:"monster_image_url"`
}

type MonsterAnswer struct {
	MonsterID      int64  `json:"monster_id"`
	SelectedAnswer string `json:"selected_answer"`
}

type BattleResult struct {
	IsCorrect          bool   `json:"is_correct"`
	DamageDealt        int    `json:"damage_dealt"`
	DamageReceived     int    `json:"damage_received"`
	MonsterDefeated    bool   `json:"monster_defeated"`
	XPEarned           int    `json:"xp_earned"`
	GoldEarned         int    `json:"gold_earned"`
	PlayerHPRemaining  int    `json:"player_hp_remaining"`
	MonsterHPRemaining int    `json:"monster_hp_remaining"`
	Message            string `json:"message"`
}

type BattleQuestion struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type BattleState struct {
	MonsterID       int64            `json:"monster_id"`
	MonsterName     string           `json:"monster_name"`
	MonsterImageURL *string          `json:"monster_image_url"`
	Description     *string          `json:"description"`
	MonsterHPPct    int              `json:"monster_hp_pct"`
	PlayerHP        int              `json:"player_hp"`
	Questions       []BattleQuestion `json:"questions"`
}

type Attack struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type AttackResult struct {
	IsCorrect       bool   `json:"is_correct"`
	DamageDealt     int    `json:"damage_dealt"`
	DamageReceived  int    `json:"damage_received"`
	MonsterDefeated bool   `json:"monster_defeated"`
	XPEarned        int    `json:"xp_earned"`
	GoldEarned      int    `json:"gold_earned"`
	PlayerHP        int    `json:"player_hp"`
	MonsterHPPct    int    `json:"monster_hp_pct"`
	Message         string `json:"message"`
}

type Progress struct {
	ProgressID  int64             `json:"progress_id"`
	UserID      int64             `json:"user_id"`
	QuestID     int64             `json:"quest_id"`
	IsCompleted bool              `json:"is_completed"`
	Score       int               `json:"score"`
	Attempts    int               `json:"attempts"`
	CompletedAt *models.Timestamp `json:"completed_at"`
}

type ProgressStats struct {
	TotalQuestsAttempted int     `json:"total_quests_attempted"`
	QuestsCompleted      int     `json:"quests_completed"`
	CompletionRate       float64 `json:"completion_rate"`
	AverageScore         float64 `json:"average_score"`
}

type Item struct {
	ItemID         int64   `json:"item_id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	ItemType       string  `json:"item_type"`
	Rarity         string  `json:"rarity"`
	Price          int     `json:"price"`
	HPBonus        int     `json:"hp_bonus"`
	XPMultiplier   float64 `json:"xp_multiplier"`
	GoldMultiplier float64 `json:"gold_multiplier"`
	Icon           *string `json:"icon"`
}

type InventoryEntry struct {
	InventoryID int64            `json:"inventory_id"`
	UserID      int64            `json:"user_id"`
	Item        Item             `json:"item"`
	Quantity    int              `json:"quantity"`
	IsEquipped  bool             `json:"is_equipped"`
	AcquiredAt  models.Timestamp `json:"acquired_at"`
}

type Purchase struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type Equip struct {
	ItemID int64 `json:"item_id"`
	Equip  bool  `json:"equip"`
}

type Achievement struct {
	AchievementID          int64   `json:"achievement_id"`
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	AchievementType        string  `json:"achievement_type"`
	IconURL                *string `json:"icon_url"`
	RequirementValue       int     `json:"requirement_value"`
	RequirementDescription *string `json:"requirement_description"`
	XPReward               int     `json:"xp_reward"`
	GoldReward             int     `json:"gold_reward"`
	TitleReward            *string `json:"title_reward"`
	Rarity                 string  `json:"rarity"`
}

type UserAchievement struct {
	UserAchievementID int64            `json:"user_achievement_id"`
	UserID            int64            `json:"user_id"`
	Achievement       Achievement      `json:"achievement"`
	UnlockedAt        models.Timestamp `json:"unlocked_at"`
}

type AchievementProgress struct {
	TotalAchievements int              `json:"total_achievements"`
	UnlockedCount     int              `json:"unlocked_count"`
	Achievements      []map[string]any `json:"achievements"`
}

type LeaderboardEntry struct {
	EntryID              int64   `json:"entry_id"`
	UserID               int64   `json:"user_id"`
	Username             string  `json:"username"`
	AvatarClass          string  `json:"avatar_class"`
	WorldID              *int64  `json:"world_id"`
	TotalXP              int     `json:"total_xp"`
	TotalGold            int     `json:"total_gold"`
	QuestsCompleted      int     `json:"quests_completed"`
	MonstersDefeated     int     `json:"monsters_defeated"`
	AchievementsUnlocked int     `json:"achievements_unlocked"`
	RankPosition         *int    `json:"rank_position"`
	PeriodStart          *string `json:"period_start"`
	PeriodEnd            *string `json:"period_end"`
}

type Rank struct {
	Rank                 int    `json:"rank"`
	TotalXP              int    `json:"total_xp"`
	TotalGold            int    `json:"total_gold"`
	QuestsCompleted      int    `json:"quests_completed"`
	MonstersDefeated     int    `json:"monsters_defeated"`
	AchievementsUnlocked int    `json:"achievements_unlocked"`
	Message              string `json:"message,omitempty"`
}

type Submission struct {
	SubmissionID    int64             `json:"submission_id"`
	AssignmentID    int64             `json:"assignment_id"`
	UserID          int64             `json:"user_id"`
	Username        *string           `json:"username"`
	SubmissionURL   *string           `json:"submission_url"`
	SubmissionText  *string           `json:"submission_text"`
	Status          string            `json:"status"`
	GradeAwarded    *int              `json:"grade_awarded"`
	TeacherFeedback *string           `json:"teacher_feedback"`
	SubmittedAt     models.Timestamp  `json:"submitted_at"`
	GradedAt        *models.Timestamp `json:"graded_at"`
}

type SubmissionInput struct {
	AssignmentID   int64   `json:"assignment_id"`
	SubmissionURL  *string `json:"submission_url,omitempty"`
	SubmissionText *string `json:"submission_text,omitempty"`
}

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

type Grade struct {
	Status          string  `json:"status"`
	GradeAwarded    int     `json:"grade_awarded"`
	TeacherFeedback *string `json:"teacher_feedback,omitempty"`
}

type Assignment struct {
	AssignmentID  int64             `json:"assignment_id"`
	QuestID       int64             `json:"quest_id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description"`
	MaxScore      int               `json:"max_score"`
	XPReward      int               `json:"xp_reward"`
	GoldReward    int               `json:"gold_reward"`
	RequiredClass *string           `json:"required_class"`
	DueDate       *models.Timestamp `json:"due_date"`
	CreatedAt     models.Timestamp  `json:"created_at"`
}

type AssignmentInput struct {
	QuestID       int64   `json:"quest_id"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	MaxScore      int     `json:"max_score,omitempty"`
	XPReward      int     `json:"xp_reward,omitempty"`
	GoldReward    int     `json:"gold_reward,omitempty"`
	RequiredClass *string `json:"required_class,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`
}

// Activity is sent as query parameters, not a body.
type Activity struct {
	Type  string
	Title string
	XP    int
	Gold  int
}

type Status struct {
	Status string `json:"status"`
}

type EngagementDashboard struct {
	DailyQuests    []map[string]any `json:"daily_quests"`
	Streak         map[string]any   `json:"streak"`
	RecentActivity []map[string]any `json:"recent_activity"`
	WeeklyGoals    map[string]any   `json:"weekly_goals"`
	Skills         []map[string]any `json:"skills"`
	ContinueQuest  map[string]any   `json:"continue_quest"`
	BattleReady    bool             `json:"battle_ready"`
	HPPercent      float64          `json:"hp_percent"`
}

type Notification struct {
	NotificationID   int64            `json:"notification_id"`
	UserID           int64            `json:"user_id"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	Icon             *string          `json:"icon"`
	NotificationType *string          `json:"notification_type"`
	RelatedID        *int64           `json:"related_id"`
	RelatedType      *string          `json:"related_type"`
	IsRead           bool             `json:"is_read"`
	CreatedAt        models.Timestamp `json:"created_at"`
}

type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}

type Upload struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type Grant struct {
	UserID   int64 `json:"user_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}
