package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleTeacher
}

// ParseRole is strict; use RoleOrDefault for values read back from storage.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func RoleOrDefault(s string) Role {
	if Role(s) == RoleTeacher {
		return RoleTeacher
	}
	return RoleUser
}

type AvatarClass string

const (
	AvatarNovice  AvatarClass = "Novice"
	AvatarWarrior AvatarClass = "Warrior"
	AvatarMage    AvatarClass = "Mage"
	AvatarRanger  AvatarClass = "Ranger"
	AvatarPaladin AvatarClass = "Paladin"
)

type HP struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Identity is the authenticated principal: the server profile plus the role
// chosen at login.
type Identity struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email,omitempty"`
	Level       int         `json:"level"`
	XP          int         `json:"xp"`
	Gold        int         `json:"gold"`
	HP          HP          `json:"hp"`
	Role        Role        `json:"role"`
	AvatarClass AvatarClass `json:"avatar_class,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Title       string      `json:"title,omitempty"`

	Bio            string `json:"bio,omitempty"`
	Specialization string `json:"specialization,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

// UserProfile is the /users/me payload.
type UserProfile struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Level       int       `json:"level"`
	CurrentXP   int       `json:"current_xp"`
	HPCurrent   int       `json:"hp_current"`
	HPMax       int       `json:"hp_max"`
	Gold        int       `json:"gold"`
	AvatarClass string    `json:"avatar_class"`
	AvatarURL   *string   `json:"avatar_url"`
	Title       *string   `json:"title"`
	CreatedAt   Timestamp `json:"created_at"`
}

func (p UserProfile) Identity() *Identity {
	return &Identity{
		ID:          p.UserID,
		Username:    p.Username,
		Email:       p.Email,
		Level:       p.Level,
		XP:          p.CurrentXP,
		Gold:        p.Gold,
		HP:          HP{Current: p.HPCurrent, Max: p.HPMax},
		Role:        RoleUser,
		AvatarClass: AvatarClass(p.AvatarClass),
		AvatarURL:   deref(p.AvatarURL),
		Title:       deref(p.Title),
		CreatedAt:   p.CreatedAt.Time,
	}
}

// TeacherProfile is the /teachers/me payload.
type TeacherProfile struct {
	TeacherID      int64     `json:"teacher_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            *string   `json:"bio"`
	Specialization *string   `json:"specialization"`
	CreatedAt      Timestamp `json:"created_at"`
}

func (p TeacherProfile) Identity() *Identity {
	return &Identity{
		ID:             p.TeacherID,
		Username:       p.Username,
		Email:          p.Email,
		Role:           RoleTeacher,
		Bio:            deref(p.Bio),
		Specialization: deref(p.Specialization),
		CreatedAt:      p.CreatedAt.Time,
	}
}

// Credential is the bearer token with the role it was issued for.
type Credential struct {
	Token string
	Role  Role
}

// StateEntry is one key of the durable storage scope.
type StateEntry struct {
	Key       string    `gorm:"column:state_key;primaryKey;size:64"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StateEntry) TableName() string { return "session_state" }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
