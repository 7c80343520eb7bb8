package session

import (
	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
)

const (
	UserHome    = "/dashboard"
	TeacherHome = "/teacher/dashboard"
)

// Decision is a route guard outcome. The zero value lets the route render.
type Decision struct {
	Wait     bool
	Redirect string
}

func (d Decision) Allowed() bool { return !d.Wait && d.Redirect == "" }

func HomeFor(role models.Role) string {
	if role == models.RoleTeacher {
		return TeacherHome
	}
	return UserHome
}

// RequireAuth guards pages that need a logged-in identity.
func RequireAuth(s Snapshot) Decision {
	if s.Loading() {
		return Decision{Wait: true}
	}
	if !s.Authenticated() {
		return Decision{Redirect: gateway.LoginPath}
	}
	return Decision{}
}

// PublicOnly guards the login and registration pages.
func PublicOnly(s Snapshot) Decision {
	if s.Loading() {
		return Decision{Wait: true}
	}
	if s.Authenticated() {
		return Decision{Redirect: HomeFor(s.Role())}
	}
	return Decision{}
}
