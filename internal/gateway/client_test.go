package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/quest_academy/internal/models"
	"github.com/Skotchmaster/quest_academy/internal/storage"
)

type testEnv struct {
	srv       *httptest.Server
	client    *Client
	creds     *storage.Credentials
	durable   *storage.MemoryScope
	ephemeral *storage.MemoryScope
	nav       *MemoryNavigator
	lastReq   atomic.Pointer[http.Request]
	lastBody  atomic.Pointer[[]byte]
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	env := &testEnv{
		durable:   storage.NewMemoryScope(),
		ephemeral: storage.NewMemoryScope(),
		nav:       NewMemoryNavigator("/dashboard", nil),
	}
	env.creds = storage.NewCredentials(env.durable, env.ephemeral)

	env.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		env.lastReq.Store(r.Clone(context.Background()))
		env.lastBody.Store(&body)
		handler(w, r)
	}))
	t.Cleanup(env.srv.Close)

	client, err := New(Options{
		BaseURL:     env.srv.URL + "/api",
		Credentials: env.creds,
		Navigator:   env.nav,
	})
	require.NoError(t, err)
	env.client = client
	return env
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_Validation(t *testing.T) {
	creds := storage.NewCredentials(storage.NewMemoryScope(), storage.NewMemoryScope())

	_, err := New(Options{BaseURL: "/api", Credentials: creds})
	require.Error(t, err)

	_, err = New(Options{BaseURL: "http://localhost/api"})
	require.Error(t, err)
}

func TestClient_AttachesBearerFromEitherScope(t *testing.T) {
	tests := []struct {
		name   string
		policy storage.Policy
		token  string
	}{
		{name: "durable", policy: storage.Durable, token: "D1"},
		{name: "ephemeral", policy: storage.Ephemeral, token: "E1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			})
			require.NoError(t, env.creds.Save(context.Background(), tt.policy, models.Credential{Token: tt.token, Role: models.RoleUser}))

			var out map[string]any
			require.NoError(t, env.client.Get(context.Background(), "/users/me", nil, &out))

			req := env.lastReq.Load()
			require.NotNil(t, req)
			assert.Equal(t, "/api/users/me", req.URL.Path)
			assert.Equal(t, "Bearer "+tt.token, req.Header.Get("Authorization"))
			assert.NotEmpty(t, req.Header.Get(HeaderRequestID))
			assert.Equal(t, true, out["ok"])
		})
	}
}

func TestClient_UnauthenticatedWithoutCredential(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := env.client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/worlds/",
		Header: http.Header{"Authorization": {"Bearer forged"}},
	}, nil)
	require.NoError(t, err)

	req := env.lastReq.Load()
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, "/api/worlds/", req.URL.Path, "trailing slash is kept")
}

func TestClient_401ClearsStateAndRedirects(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
	})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Durable, models.Credential{Token: "D1", Role: models.RoleUser}))
	require.NoError(t, env.durable.Set(ctx, storage.KeyUser, "{}"))

	var hookCalls atomic.Int32
	env.client.OnUnauthorized(func() { hookCalls.Add(1) })

	err := env.client.Get(ctx, "/progress/stats", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	assert.Zero(t, env.durable.Len())
	assert.Zero(t, env.ephemeral.Len())
	assert.Equal(t, int32(1), hookCalls.Load())
	assert.Equal(t, []string{LoginPath}, env.nav.Redirects())
	assert.Equal(t, LoginPath, env.nav.Location())
}

func TestClient_401OnPublicPageDoesNotRedirect(t *testing.T) {
	for _, loc := range []string{LoginPath, RegisterPath} {
		t.Run(loc, func(t *testing.T) {
			env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
			})
			env.nav.SetLocation(loc)
			require.NoError(t, env.creds.Save(context.Background(), storage.Ephemeral, models.Credential{Token: "E1", Role: models.RoleUser}))

			err := env.client.PostForm(context.Background(), "/auth/login", url.Values{"username": {"a@a.com"}}, nil)
			require.Error(t, err)
			assert.Equal(t, "Incorrect email or password", ErrorMessage(err, "Login failed"))

			assert.Empty(t, env.nav.Redirects())
			assert.Zero(t, env.ephemeral.Len(), "credentials are cleared even on public pages")
		})
	}
}

func TestClient_CrossHostRedirectDropsCredential(t *testing.T) {
	var foreignAuth atomic.Pointer[string]
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		foreignAuth.Store(&h)
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
	}))
	defer foreign.Close()

	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, foreign.URL+"/collect", http.StatusFound)
	})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Durable, models.Credential{Token: "SECRET", Role: models.RoleUser}))

	var hookCalls atomic.Int32
	env.client.OnUnauthorized(func() { hookCalls.Add(1) })

	err := env.client.Get(ctx, "/users/me", nil, nil)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Status)

	assert.Equal(t, "Bearer SECRET", env.lastReq.Load().Header.Get("Authorization"))
	got := foreignAuth.Load()
	require.NotNil(t, got)
	assert.Empty(t, *got)

	token, err := env.creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SECRET", token, "a foreign 401 does not end the session")
	assert.Zero(t, hookCalls.Load())
	assert.Empty(t, env.nav.Redirects())
}

func TestClient_SameHostRedirectKeepsCredential(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/worlds" {
			http.Redirect(w, r, "/api/worlds/", http.StatusTemporaryRedirect)
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Ephemeral, models.Credential{Token: "E1", Role: models.RoleUser}))

	var out []any
	require.NoError(t, env.client.Get(ctx, "/worlds", nil, &out))

	req := env.lastReq.Load()
	assert.Equal(t, "/api/worlds/", req.URL.Path)
	assert.Equal(t, "Bearer E1", req.Header.Get("Authorization"))
}

func TestClient_OtherErrorsPassThrough(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Not enough gold"})
	})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Durable, models.Credential{Token: "D1", Role: models.RoleUser}))

	err := env.client.Post(ctx, "/inventory/buy", map[string]any{"item_id": 3, "quantity": 1}, nil)

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Not enough gold", ErrorMessage(err, "fallback"))

	token, err := env.creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D1", token)
	assert.Empty(t, env.nav.Redirects())

	req := env.lastReq.Load()
	assert.Equal(t, MIMEApplicationJSON, req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"item_id":3,"quantity":1}`, string(*env.lastBody.Load()))
}

func TestClient_FormAndUploadKeepAuthorization(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"url": "/static/uploads/abc.png", "filename": "abc.png"})
	})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Durable, models.Credential{Token: "D1", Role: models.RoleUser}))

	require.NoError(t, env.client.PostForm(ctx, "/auth/login", url.Values{"username": {"a@a.com"}, "password": {"secret"}}, nil))
	req := env.lastReq.Load()
	assert.Equal(t, MIMEApplicationForm, req.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer D1", req.Header.Get("Authorization"))
	form, err := url.ParseQuery(string(*env.lastBody.Load()))
	require.NoError(t, err)
	assert.Equal(t, "a@a.com", form.Get("username"))

	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, env.client.Upload(ctx, "/upload/file", "file", "hero.png", strings.NewReader("png-bytes"), &out))
	req = env.lastReq.Load()
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary="))
	assert.Equal(t, "Bearer D1", req.Header.Get("Authorization"))
	assert.Contains(t, string(*env.lastBody.Load()), "png-bytes")
	assert.Equal(t, "/static/uploads/abc.png", out.URL)
}

func TestClient_NetworkErrorIsNotAnAuthFailure(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()
	require.NoError(t, env.creds.Save(ctx, storage.Durable, models.Credential{Token: "D1", Role: models.RoleUser}))
	env.srv.Close()

	err := env.client.Get(ctx, "/users/me", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Login failed", ErrorMessage(err, "Login failed"))

	token, err := env.creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D1", token)
}

func TestErrorMessage_NonStringDetail(t *testing.T) {
	err := &HTTPError{Status: 422, Detail: []any{map[string]any{"msg": "field required"}}}
	assert.Equal(t, "Registration failed", ErrorMessage(err, "Registration failed"))
	assert.Contains(t, err.Error(), "422")

	err = &HTTPError{Status: 400, Detail: "  "}
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
}

func TestClient_URL(t *testing.T) {
	creds := storage.NewCredentials(storage.NewMemoryScope(), storage.NewMemoryScope())
	c, err := New(Options{BaseURL: "http://localhost:5173/api/", Credentials: creds})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5173/api", c.BaseURL())
	assert.Equal(t, "http://localhost:5173/api/leaderboard?limit=10&offset=0",
		c.URL("/leaderboard", url.Values{"limit": {"10"}, "offset": {"0"}}))
}
