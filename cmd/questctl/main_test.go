package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/testserver"
	"github.com/Skotchmaster/quest_academy/pkg/config"
)

type harness struct {
	srv    *testserver.Server
	cfg    config.Config
	stderr string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := testserver.New()
	t.Cleanup(srv.Close)
	return &harness{
		srv: srv,
		cfg: config.Config{
			ServiceName: "questctl",
			LogLevel:    "error",
			APIURL:      srv.URL(),
			StateDSN:    "file:" + filepath.Join(t.TempDir(), "session.db"),
			HTTPTimeout: 5 * time.Second,
		},
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(h.cfg)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	h.stderr = errOut.String()
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")

	out, err := h.run(t, "", "login", "--email", "hero@x.io", "--password", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Hero (user)\n", out)

	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "Hero"`)
	assert.Contains(t, out, `"role": "user"`)

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	_, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleTeacher, "Mentor", "mentor@x.io", "secret1")

	out, err := h.run(t, "secret1\n", "login", "--teacher", "--email", "mentor@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as Mentor (teacher)\n", out)
}

func TestLogin_NotRememberedDoesNotOutliveProcess(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")

	_, err := h.run(t, "", "login", "--email", "hero@x.io", "--password", "secret1", "--remember=false")
	require.NoError(t, err)

	_, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLogin_BadPassword(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")

	_, err := h.run(t, "", "login", "--email", "hero@x.io", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, testserver.DetailBadCredentials, err.Error())
	assert.NotContains(t, h.stderr, msgSessionExpired)
}

func TestWhoami_RevokedTokenReportsExpiry(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")

	_, err := h.run(t, "", "login", "--email", "hero@x.io", "--password", "secret1")
	require.NoError(t, err)
	h.srv.RevokeTokens()

	_, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Contains(t, h.stderr, msgSessionExpired)

	_, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.NotContains(t, h.stderr, msgSessionExpired, "nothing left to expire")
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "register", "--username", "Hero", "--email", "hero@x.io", "--password", "secret1", "--confirm", "secret2")
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", err.Error())

	out, err := h.run(t, "", "register", "--username", "Hero", "--email", "hero@x.io", "--password", "secret1", "--avatar", "Mage")
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Hero! Logged in as user\n", out)

	out, err = h.run(t, "", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, `"avatar_class": "Mage"`)
}

func TestWorldsAndLeaderboard(t *testing.T) {
	h := newHarness(t)
	h.srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")
	e := h.srv.Echo()
	e.GET("/api/worlds/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []echo.Map{
			{"world_id": 1, "title": "Algebra Isles", "difficulty_level": "Easy", "is_published": true, "zones_count": 3, "created_at": "2024-05-01T10:00:00"},
		})
	}, h.srv.RequireRole(models.RoleUser))
	e.GET("/api/leaderboard", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []echo.Map{
			{"user_id": 1, "username": "Hero", "avatar_class": "Mage", "total_xp": 900, "total_gold": 50},
		})
	}, h.srv.RequireRole(models.RoleUser))
	e.GET("/api/leaderboard/my-rank", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"rank": 1, "total_xp": 900})
	}, h.srv.RequireRole(models.RoleUser))

	_, err := h.run(t, "", "login", "--email", "hero@x.io", "--password", "secret1")
	require.NoError(t, err)

	out, err := h.run(t, "", "worlds")
	require.NoError(t, err)
	assert.Contains(t, out, "Algebra Isles")

	out, err = h.run(t, "", "leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Hero")
	assert.Contains(t, out, "Your rank: 1 (900 XP)")
}

func TestUpload_RequiresSession(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o600))

	_, err := h.run(t, "", "upload", path)
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Zero(t, h.srv.Hits("/upload/file"))
}
