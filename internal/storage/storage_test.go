package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/quest_academy/internal/models"
	pkgdb "github.com/Skotchmaster/quest_academy/pkg/db"
)

func openGormScope(t *testing.T, path string) *GormScope {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), "file:"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	scope, err := NewGormScope(context.Background(), db)
	require.NoError(t, err)
	return scope
}

func TestScopes_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	scopes := map[string]Scope{
		"memory": NewMemoryScope(),
		"gorm":   openGormScope(t, filepath.Join(t.TempDir(), "state.db")),
	}

	for name, s := range scopes {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyToken)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, KeyToken, "T1"))
			require.NoError(t, s.Set(ctx, KeyToken, "T2"))
			v, err := s.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "T2", v)

			require.NoError(t, s.Delete(ctx, KeyToken, KeyRole))
			_, err = s.Get(ctx, KeyToken)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete(ctx))
		})
	}
}

func TestGormScope_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first := openGormScope(t, path)
	require.NoError(t, first.Set(ctx, KeyToken, "T1"))

	second := openGormScope(t, path)
	v, err := second.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "T1", v)
}

func TestCredentials_SaveIsExclusive(t *testing.T) {
	ctx := context.Background()
	durable, ephemeral := NewMemoryScope(), NewMemoryScope()
	creds := NewCredentials(durable, ephemeral)

	require.NoError(t, creds.Save(ctx, Ephemeral, models.Credential{Token: "E1", Role: models.RoleUser}))
	require.NoError(t, creds.Save(ctx, Durable, models.Credential{Token: "D1", Role: models.RoleTeacher}))

	_, err := ephemeral.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, ErrNotFound, "switching to durable must drop the ephemeral token")

	cred, policy, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Durable, policy)
	assert.Equal(t, models.Credential{Token: "D1", Role: models.RoleTeacher}, cred)

	require.NoError(t, creds.Save(ctx, Ephemeral, models.Credential{Token: "E2", Role: models.RoleUser}))
	assert.Zero(t, durable.Len())

	cred, policy, err = creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ephemeral, policy)
	assert.Equal(t, "E2", cred.Token)
}

func TestCredentials_LoadPrefersDurable(t *testing.T) {
	ctx := context.Background()
	durable, ephemeral := NewMemoryScope(), NewMemoryScope()
	creds := NewCredentials(durable, ephemeral)

	// written behind the store's back, as an older client would
	require.NoError(t, ephemeral.Set(ctx, KeyToken, "E1"))
	require.NoError(t, durable.Set(ctx, KeyToken, "D1"))

	token, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D1", token)

	cred, _, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, cred.Role, "missing role defaults to user")
}

func TestCredentials_ClearBothScopes(t *testing.T) {
	ctx := context.Background()
	durable, ephemeral := NewMemoryScope(), NewMemoryScope()
	creds := NewCredentials(durable, ephemeral)

	require.NoError(t, durable.Set(ctx, KeyUser, `{"username":"Hero"}`))
	require.NoError(t, creds.Save(ctx, Durable, models.Credential{Token: "D1", Role: models.RoleUser}))
	require.NoError(t, ephemeral.Set(ctx, KeyToken, "stale"))

	require.NoError(t, creds.Clear(ctx))
	require.NoError(t, creds.Clear(ctx))

	assert.Zero(t, durable.Len())
	assert.Zero(t, ephemeral.Len())

	token, err := creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, _, err = creds.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, Durable, PolicyFor(true))
	assert.Equal(t, Ephemeral, PolicyFor(false))
	assert.Equal(t, "durable", Durable.String())
	assert.Equal(t, "ephemeral", Ephemeral.String())
}
