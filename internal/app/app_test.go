package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/quest_academy/internal/events"
	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/session"
	"github.com/Skotchmaster/quest_academy/internal/storage"
	"github.com/Skotchmaster/quest_academy/internal/testserver"
	"github.com/Skotchmaster/quest_academy/pkg/config"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

func testConfig(t *testing.T, apiURL string) config.Config {
	return config.Config{
		ServiceName: "questctl",
		APIURL:      apiURL,
		StateDSN:    "file:" + filepath.Join(t.TempDir(), "session.db"),
		HTTPTimeout: 5 * time.Second,
	}
}

func TestNew_WiresSessionToGateway(t *testing.T) {
	srv := testserver.New()
	defer srv.Close()
	srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")

	ctx := context.Background()
	nav := gateway.NewMemoryNavigator("/worlds", nil)
	a, err := New(ctx, testConfig(t, srv.URL()), logging.Discard(), Options{Navigator: nav})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, srv.APIURL(), a.Gateway.BaseURL())
	assert.IsType(t, events.NopPublisher{}, a.Events)

	res := a.Session.Login(ctx, "hero@x.io", "secret1", models.RoleUser, storage.Durable)
	require.True(t, res.Success, res.Error)

	srv.RevokeTokens()
	_, err = a.API.Users.Stats(ctx)
	require.ErrorIs(t, err, gateway.ErrUnauthorized)

	assert.Equal(t, session.Anonymous, a.Session.Snapshot().State)
	assert.Equal(t, []string{gateway.LoginPath}, nav.Redirects())
}

func TestNew_DurableSessionAcrossInstances(t *testing.T) {
	srv := testserver.New()
	defer srv.Close()
	srv.AddAccount(models.RoleTeacher, "Mentor", "mentor@x.io", "secret1")

	ctx := context.Background()
	cfg := testConfig(t, srv.URL())

	first, err := New(ctx, cfg, logging.Discard(), Options{})
	require.NoError(t, err)
	require.True(t, first.Session.Login(ctx, "mentor@x.io", "secret1", models.RoleTeacher, storage.Durable).Success)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg, logging.Discard(), Options{})
	require.NoError(t, err)
	defer second.Close()

	snap := second.Session.Bootstrap(ctx)
	require.Equal(t, session.Authenticated, snap.State)
	assert.Equal(t, models.RoleTeacher, snap.Identity.Role)
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.Origin = "localhost"
	_, err := New(context.Background(), cfg, logging.Discard(), Options{})
	assert.Error(t, err)
}
