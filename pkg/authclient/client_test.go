package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/quest_academy/internal/gateway"
	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/storage"
	"github.com/Skotchmaster/quest_academy/internal/testserver"
)

func newClient(t *testing.T, apiURL string) (*Client, *storage.Credentials) {
	t.Helper()
	creds := storage.NewCredentials(storage.NewMemoryScope(), storage.NewMemoryScope())
	gw, err := gateway.New(gateway.Options{BaseURL: apiURL, Credentials: creds})
	require.NoError(t, err)
	return NewClient(gw), creds
}

func TestLogin_PerRoleEndpoint(t *testing.T) {
	srv := testserver.New()
	defer srv.Close()
	srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")
	srv.AddAccount(models.RoleTeacher, "Mentor", "mentor@x.io", "secret1")

	c, _ := newClient(t, srv.APIURL())
	ctx := context.Background()

	tok, err := c.Login(ctx, models.RoleUser, "hero@x.io", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	tok, err = c.Login(ctx, models.RoleTeacher, "mentor@x.io", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	assert.Equal(t, 1, srv.Hits("/auth/login"))
	assert.Equal(t, 1, srv.Hits("/auth/teacher/login"))

	_, err = c.Login(ctx, models.RoleTeacher, "hero@x.io", "secret1")
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestLogin_EmptyTokenRejected(t *testing.T) {
	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"token_type": "bearer"})
	})
	hs := httptest.NewServer(e)
	defer hs.Close()

	c, _ := newClient(t, hs.URL+"/api")
	_, err := c.Login(context.Background(), models.RoleUser, "a@a.com", "secret")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestRegister_BodiesPerRole(t *testing.T) {
	e := echo.New()
	var userBody, teacherBody map[string]any
	e.POST("/api/auth/register", func(c echo.Context) error {
		require.NoError(t, c.Bind(&userBody))
		return c.JSON(http.StatusCreated, echo.Map{})
	})
	e.POST("/api/auth/teacher/register", func(c echo.Context) error {
		require.NoError(t, c.Bind(&teacherBody))
		return c.JSON(http.StatusCreated, echo.Map{})
	})
	hs := httptest.NewServer(e)
	defer hs.Close()

	c, _ := newClient(t, hs.URL+"/api")
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, Registration{
		Role: models.RoleUser, Username: "Hero", Email: "hero@x.io", Password: "secret1", AvatarClass: models.AvatarPaladin,
	}))
	require.NoError(t, c.Register(ctx, Registration{
		Role: models.RoleTeacher, Username: "Mentor", Email: "mentor@x.io", Password: "secret1", Bio: "Math",
	}))

	assert.Equal(t, map[string]any{
		"username": "Hero", "email": "hero@x.io", "password": "secret1", "avatar_class": "Paladin",
	}, userBody)
	assert.Equal(t, map[string]any{
		"username": "Mentor", "email": "mentor@x.io", "password": "secret1", "bio": "Math",
	}, teacherBody)
}

func TestProfile_UsesStoredToken(t *testing.T) {
	srv := testserver.New()
	defer srv.Close()
	acc := srv.AddAccount(models.RoleUser, "Hero", "hero@x.io", "secret1")
	srv.Update(models.RoleUser, "hero@x.io", func(a *testserver.Account) { a.Gold = 40 })

	c, creds := newClient(t, srv.APIURL())
	ctx := context.Background()
	token := srv.IssueToken(acc, time.Hour)
	require.NoError(t, creds.Save(ctx, storage.Ephemeral, models.Credential{Token: token, Role: models.RoleUser}))

	id, err := c.Profile(ctx, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, id.ID)
	assert.Equal(t, 40, id.Gold)
	assert.Equal(t, models.RoleUser, id.Role)
	assert.Equal(t, []string{"Bearer " + token}, srv.Authorizations("/users/me"))
}

func TestProfile_UnknownRole(t *testing.T) {
	c, _ := newClient(t, "http://127.0.0.1:1/api")
	_, err := c.Profile(context.Background(), models.Role("admin"))
	assert.Error(t, err)
}
