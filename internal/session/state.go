package session

import (
	"fmt"

	"github.com/Skotchmaster/quest_academy/internal/models"
)

type State int

const (
	// Unresolved is the startup state, before Bootstrap.
	Unresolved State = iota
	// Resolving means a silent re-authentication is in flight.
	Resolving
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is an immutable view of the store. Version grows with every
// transition, so subscribers can drop out-of-order deliveries.
type Snapshot struct {
	State    State
	Identity *models.Identity
	Version  uint64
}

func (s Snapshot) Authenticated() bool { return s.State == Authenticated }

func (s Snapshot) Loading() bool { return s.State == Unresolved || s.State == Resolving }

func (s Snapshot) Role() models.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Result is what every public operation reports instead of an error.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func failure(msg string) Result { return Result{Error: msg} }
