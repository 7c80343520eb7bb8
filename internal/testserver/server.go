// Package testserver runs an in-process fake of the Quest Academy API for
// client tests: both auth flows, both profile endpoints and whatever extra
// protected routes a test registers.
package testserver

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/quest_academy/internal/hash"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
	loggingmw "github.com/Skotchmaster/quest_academy/pkg/middleware/logging"
	"github.com/Skotchmaster/quest_academy/pkg/tokens"
)

const (
	DetailBadCredentials = "Incorrect email or password"
	DetailInvalidToken   = "Could not validate credentials"
	DetailEmailTaken     = "Email already registered"
	DetailUsernameTaken  = "Username already taken"

	ctxAccount = "account"
)

type Account struct {
	ID           int64
	Role         models.Role
	Username     string
	Email        string
	PasswordHash string

	AvatarClass string
	Level       int
	XP          int
	Gold        int
	HPCurrent   int
	HPMax       int

	Bio            string
	Specialization string
	CreatedAt      time.Time
}

type Server struct {
	e      *echo.Echo
	hs     *httptest.Server
	secret []byte
	ttl    time.Duration

	mu            sync.Mutex
	accounts      map[string]*Account
	nextID        int64
	generation    int
	hits          map[string]int
	authHeaders   map[string][]string
	hold          chan struct{}
	profileStatus int
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.e.Use(loggingmw.RequestLogger(l)) }
}

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

func New(opts ...Option) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = detailErrorHandler

	s := &Server{
		e:           e,
		secret:      []byte("quest-academy-test-secret"),
		ttl:         30 * time.Minute,
		accounts:    make(map[string]*Account),
		authHeaders: make(map[string][]string),
		hits:        make(map[string]int),
	}
	e.Use(s.record)
	for _, opt := range opts {
		opt(s)
	}

	api := e.Group("/api")
	api.POST("/auth/login", s.login(models.RoleUser))
	api.POST("/auth/teacher/login", s.login(models.RoleTeacher))
	api.POST("/auth/register", s.registerUser)
	api.POST("/auth/teacher/register", s.registerTeacher)
	api.GET("/users/me", s.profile, s.RequireRole(models.RoleUser))
	api.GET("/teachers/me", s.profile, s.RequireRole(models.RoleTeacher))

	s.hs = httptest.NewServer(e)
	return s
}

func (s *Server) URL() string    { return s.hs.URL }
func (s *Server) APIURL() string { return s.hs.URL + "/api" }
func (s *Server) Close()         { s.hs.Close() }

// Echo exposes the router so tests can mount extra /api routes.
func (s *Server) Echo() *echo.Echo { return s.e }

func key(role models.Role, email string) string {
	return string(role) + "|" + strings.ToLower(email)
}

// AddAccount seeds an account and returns it.
func (s *Server) AddAccount(role models.Role, username, email, password string) *Account {
	acc, err := s.create(role, username, email, password)
	if err != nil {
		panic(err)
	}
	return acc
}

func (s *Server) create(role models.Role, username, email, password string) (*Account, error) {
	pw, err := hash.HashPassword(password, hash.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[key(role, email)]; ok {
		return nil, errors.New(DetailEmailTaken)
	}
	for _, a := range s.accounts {
		if a.Role == role && a.Username == username {
			return nil, errors.New(DetailUsernameTaken)
		}
	}
	s.nextID++
	acc := &Account{
		ID:           s.nextID,
		Role:         role,
		Username:     username,
		Email:        email,
		PasswordHash: pw,
		AvatarClass:  string(models.AvatarNovice),
		Level:        1,
		HPCurrent:    100,
		HPMax:        100,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	s.accounts[key(role, email)] = acc
	return acc, nil
}

// Update mutates a seeded account under the server lock.
func (s *Server) Update(role models.Role, email string, fn func(*Account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[key(role, email)]; ok {
		fn(acc)
	}
}

// Hits counts requests to path, given without the /api prefix.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Authorizations lists the Authorization headers seen on path, "" when absent.
func (s *Server) Authorizations(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authHeaders[path]...)
}

// HoldProfiles blocks profile responses until release is called.
func (s *Server) HoldProfiles() (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.hold = ch
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.hold == ch {
				s.hold = nil
			}
			s.mu.Unlock()
			close(ch)
		})
	}
}

// FailProfiles makes profile endpoints answer with status; 0 restores them.
func (s *Server) FailProfiles(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileStatus = status
}

// RevokeTokens invalidates every token issued so far.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// IssueToken signs a token for acc that expires after ttl (negative for an
// already expired one).
func (s *Server) IssueToken(acc *Account, ttl time.Duration) string {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	now := time.Now()
	token, err := tokens.SignAccessToken(tokens.AccessClaims{
		Username: acc.Username,
		Role:     string(acc.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acc.ID, 10),
			ID:        strconv.Itoa(gen),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}, s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := strings.TrimPrefix(c.Request().URL.Path, "/api")
		s.mu.Lock()
		s.hits[p]++
		s.authHeaders[p] = append(s.authHeaders[p], c.Request().Header.Get(echo.HeaderAuthorization))
		s.mu.Unlock()
		return next(c)
	}
}

// RequireRole rejects requests without a live bearer token for role.
func (s *Server) RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_role")
			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || raw == "" {
				l.Warn("auth_failed", "status", 401, "reason", "no bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, DetailInvalidToken)
			}
			claims, err := tokens.AccessClaimsFromToken(raw, s.secret)
			if err != nil {
				l.Warn("auth_failed", "status", 401, "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, DetailInvalidToken)
			}

			s.mu.Lock()
			gen := strconv.Itoa(s.generation)
			var acc *Account
			for _, a := range s.accounts {
				if strconv.FormatInt(a.ID, 10) == claims.Subject && a.Role == role {
					acc = a
				}
			}
			s.mu.Unlock()

			if claims.ID != gen || claims.Role != string(role) || acc == nil {
				l.Warn("auth_failed", "status", 401, "reason", "revoked or wrong role")
				return echo.NewHTTPError(http.StatusUnauthorized, DetailInvalidToken)
			}
			c.Set(ctxAccount, acc)
			return next(c)
		}
	}
}

// AccountFrom returns the account RequireRole attached to c.
func AccountFrom(c echo.Context) *Account {
	acc, _ := c.Get(ctxAccount).(*Account)
	return acc
}

func detailErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var detail any = http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		detail = he.Message
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"detail": detail})
}
