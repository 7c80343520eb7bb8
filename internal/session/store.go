package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Skotchmaster/quest_academy/internal/events"
	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/storage"
	"github.com/Skotchmaster/quest_academy/pkg/authclient"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
	"github.com/Skotchmaster/quest_academy/pkg/tokens"
)

const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgSuperseded         = "session superseded"
	MsgUnknownRole        = "Unknown role"
)

// Authenticator is the slice of the auth API the store drives.
type Authenticator interface {
	Login(ctx context.Context, role models.Role, email, password string) (string, error)
	Register(ctx context.Context, r authclient.Registration) error
	Profile(ctx context.Context, role models.Role) (*models.Identity, error)
}

type CredentialStore interface {
	Save(ctx context.Context, p storage.Policy, cred models.Credential) error
	Load(ctx context.Context) (models.Credential, storage.Policy, error)
	Clear(ctx context.Context) error
}

type Deps struct {
	Auth        Authenticator
	Credentials CredentialStore
	Events      events.Publisher
	Logger      *slog.Logger
	Now         func() time.Time
}

// Store owns the session lifecycle. Every operation that starts a new
// session attempt bumps the epoch; results carrying an older epoch are
// dropped, so a late bootstrap or login can never resurrect a session that
// a logout or 401 already ended.
//
// mu guards state and storage writes and is never held across a network
// call: the 401 hook re-enters the store from inside the gateway.
type Store struct {
	auth   Authenticator
	creds  CredentialStore
	events events.Publisher
	log    *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	identity *models.Identity
	epoch    uint64
	version  uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

func New(d Deps) *Store {
	s := &Store{
		auth:   d.Auth,
		creds:  d.Credentials,
		events: d.Events,
		log:    d.Logger,
		now:    d.Now,
		state:  Unresolved,
		subs:   make(map[int]func(Snapshot)),
	}
	if s.events == nil {
		s.events = events.NopPublisher{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("component", "session")
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Attach wires the store to the gateway's 401 hook.
func (s *Store) Attach(gw *gateway.Client) {
	gw.OnUnauthorized(s.Expire)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every transition and returns its cancel func.
// Callbacks run outside the store's locks and may call back into it.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Bootstrap resolves a persisted credential at startup. It always settles in
// Authenticated or Anonymous unless a newer operation has taken over.
func (s *Store) Bootstrap(ctx context.Context) Snapshot {
	l := s.log.With("op", "bootstrap")

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch

	cred, policy, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.Error("load credentials", "error", err)
		}
		snap, changed := s.settleLocked(Anonymous, nil)
		s.mu.Unlock()
		s.notify(changed, snap)
		return snap
	}

	if claims, err := tokens.InspectAccessToken(cred.Token); err == nil && claims.Expired(s.now()) {
		l.Info("stored token expired", "role", cred.Role, "scope", policy)
		s.clearLocked(ctx, l)
		snap, changed := s.settleLocked(Anonymous, nil)
		s.mu.Unlock()
		s.notify(changed, snap)
		return snap
	}

	snap, changed := s.settleLocked(Resolving, nil)
	s.mu.Unlock()
	s.notify(changed, snap)

	identity, err := s.auth.Profile(ctx, cred.Role)

	s.mu.Lock()
	if epoch != s.epoch {
		snap = s.snapshotLocked()
		s.mu.Unlock()
		l.Debug("bootstrap result dropped", "state", snap.State)
		return snap
	}
	if err != nil {
		// Transport failures and cancellation keep the credential for the next start.
		var he *gateway.HTTPError
		if errors.As(err, &he) {
			l.Warn("restore session", "role", cred.Role, "status", he.Status)
			s.clearLocked(ctx, l)
		} else {
			l.Warn("restore session, keeping stored credential", "role", cred.Role, "error", err)
		}
		snap, changed = s.settleLocked(Anonymous, nil)
	} else {
		identity.Role = cred.Role
		l.Info("session restored", "role", cred.Role, "user_id", identity.ID, "scope", policy)
		snap, changed = s.settleLocked(Authenticated, identity)
	}
	s.mu.Unlock()
	s.notify(changed, snap)
	return snap
}

// Login exchanges credentials for a token, persists it under policy and
// loads the identity. Any failure after the exchange leaves nothing behind.
func (s *Store) Login(ctx context.Context, email, password string, role models.Role, policy storage.Policy) Result {
	if !role.Valid() {
		return failure(MsgUnknownRole)
	}
	l := s.log.With("op", "login", "role", role, "scope", policy)
	epoch := s.begin()

	token, err := s.auth.Login(ctx, role, email, password)
	if err != nil {
		l.Info("login rejected", "error", err)
		return s.fail(ctx, l, epoch, gateway.ErrorMessage(err, MsgLoginFailed))
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		l.Info("login superseded before persisting")
		return failure(MsgSuperseded)
	}
	err = s.creds.Save(ctx, policy, models.Credential{Token: token, Role: role})
	s.mu.Unlock()
	if err != nil {
		l.Error("persist credentials", "error", err)
		return s.fail(ctx, l, epoch, MsgLoginFailed)
	}

	identity, err := s.auth.Profile(ctx, role)
	if err != nil {
		l.Warn("load profile after login", "error", err)
		return s.fail(ctx, l, epoch, gateway.ErrorMessage(err, MsgLoginFailed))
	}
	identity.Role = role

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		l.Info("login superseded before completing")
		return failure(MsgSuperseded)
	}
	snap, changed := s.settleLocked(Authenticated, identity)
	s.mu.Unlock()
	s.notify(changed, snap)

	l.Info("logged in", "user_id", identity.ID)
	s.publish(events.TypeLogin, identity)
	return ok()
}

// Register creates the account and then logs in durably with the same
// email and password.
func (s *Store) Register(ctx context.Context, req RegisterRequest) Result {
	if err := req.Validate(); err != nil {
		return failure(validationMessage(err))
	}
	role := req.role()
	l := s.log.With("op", "register", "role", role)

	avatar := req.AvatarClass
	if role == models.RoleUser && avatar == "" {
		avatar = models.AvatarNovice
	}

	epoch := s.begin()
	err := s.auth.Register(ctx, authclient.Registration{
		Role:           role,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		AvatarClass:    avatar,
		Bio:            req.Bio,
		Specialization: req.Specialization,
	})
	if err != nil {
		l.Info("registration rejected", "error", err)
		return s.fail(ctx, l, epoch, gateway.ErrorMessage(err, MsgRegistrationFailed))
	}

	res := s.Login(ctx, req.Email, req.Password, role, storage.Durable)
	if res.Success {
		s.publish(events.TypeRegister, s.Snapshot().Identity)
	}
	return res
}

// Logout clears both scopes and settles Anonymous. Safe to call repeatedly.
func (s *Store) Logout() {
	ctx := context.Background()
	l := s.log.With("op", "logout")

	s.mu.Lock()
	s.epoch++
	prev := s.identity
	s.clearLocked(ctx, l)
	snap, changed := s.settleLocked(Anonymous, nil)
	s.mu.Unlock()
	s.notify(changed, snap)

	if prev != nil {
		l.Info("logged out", "role", prev.Role, "user_id", prev.ID)
		s.publish(events.TypeLogout, prev)
	}
}

// Expire is the 401 hook. The gateway has already cleared the credentials.
func (s *Store) Expire() {
	s.mu.Lock()
	s.epoch++
	prev := s.identity
	snap, changed := s.settleLocked(Anonymous, nil)
	s.mu.Unlock()
	s.notify(changed, snap)

	if prev != nil {
		s.log.Info("session expired", "role", prev.Role, "user_id", prev.ID)
		s.publish(events.TypeExpired, prev)
	}
}

// Refresh reloads the student profile. Teacher sessions and anonymous
// stores are left alone; failures are logged and swallowed.
func (s *Store) Refresh(ctx context.Context) {
	l := s.log.With("op", "refresh")

	s.mu.Lock()
	if s.state != Authenticated || s.identity == nil || s.identity.Role != models.RoleUser {
		s.mu.Unlock()
		l.Debug("refresh skipped")
		return
	}
	epoch := s.epoch
	role := s.identity.Role
	s.mu.Unlock()

	identity, err := s.auth.Profile(ctx, role)
	if err != nil {
		l.Warn("refresh profile", "error", err)
		return
	}
	identity.Role = role

	s.mu.Lock()
	if epoch != s.epoch || s.state != Authenticated {
		s.mu.Unlock()
		l.Debug("refresh result dropped")
		return
	}
	snap, changed := s.settleLocked(Authenticated, identity)
	s.mu.Unlock()
	s.notify(changed, snap)
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.epoch
}

// fail closes out attempt epoch: credentials are cleared and the store
// settles Anonymous, unless a newer operation already owns the session.
func (s *Store) fail(ctx context.Context, l *slog.Logger, epoch uint64, msg string) Result {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return failure(msg)
	}
	s.clearLocked(ctx, l)
	snap, changed := s.settleLocked(Anonymous, nil)
	s.mu.Unlock()
	s.notify(changed, snap)
	return failure(msg)
}

func (s *Store) clearLocked(ctx context.Context, l *slog.Logger) {
	if err := s.creds.Clear(context.WithoutCancel(ctx)); err != nil {
		l.Error("clear credentials", "error", err)
	}
}

func (s *Store) settleLocked(state State, identity *models.Identity) (Snapshot, bool) {
	changed := s.state != state || s.identity != identity
	s.state = state
	s.identity = identity
	if changed {
		s.version++
	}
	return s.snapshotLocked(), changed
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{State: s.state, Identity: s.identity.Clone(), Version: s.version}
}

func (s *Store) notify(changed bool, snap Snapshot) {
	if !changed {
		return
	}
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) publish(typ string, identity *models.Identity) {
	ev := events.SessionEvent{Type: typ, At: s.now().UTC()}
	if identity != nil {
		ev.Role = string(identity.Role)
		ev.UserID = identity.ID
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish session event", "type", typ, "error", err)
	}
}
