package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type catalogAPI struct {
	mu       sync.Mutex
	products []map[string]any
}

func (api *catalogAPI) created() []map[string]any {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]map[string]any(nil), api.products...)
}

func (api *catalogAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body.Email != "a@b.com" || body.Password != "x" {
			http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":{"accessToken":"abc123"}}`))
	})
	authed := func(req *http.Request) bool {
		c, err := req.Cookie("accessToken")
		return err == nil && c.Value == "abc123"
	}
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		if !authed(req) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})
	r.Post("/api/products", func(w http.ResponseWriter, req *http.Request) {
		if !authed(req) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var p map[string]any
		if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		api.mu.Lock()
		api.products = append(api.products, p)
		api.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p1"}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) (*catalogAPI, string) {
	t.Helper()
	api := &catalogAPI{}
	srv := api.server(t)
	t.Setenv("CATALOG_API_URL", srv.URL)
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AUDIT_ENABLED", "false")
	return api, srv.URL
}

func TestLoginThenCreateProduct(t *testing.T) {
	api, base := setup(t)

	out, err := run(t, "x\n", "login", "--email", "a@b.com", "--password-stdin")
	require.NoError(t, err)
	require.Equal(t, "Logging in...\nLogin successful!\nHome: "+base+"/\n", out)

	out, err = run(t, "", "whoami", "--verify")
	require.NoError(t, err)
	require.Contains(t, out, "token …c123")
	require.Contains(t, out, "Token accepted by the API")

	out, err = run(t, "", "product", "create",
		"--name", "Mug", "--sku", "MUG-1", "--description", "Blue mug",
		"--category", "kitchen", "--price", "12.5", "--stock", "10",
		"--tags", "blue, ceramic",
		"--image", "https://img.example/a.png", "--image", "https://img.example/b,c.png")
	require.NoError(t, err)
	require.Equal(t, "Creating...\nProduct created successfully!\n", out)

	created := api.created()
	require.Len(t, created, 1)
	p := created[0]
	require.Equal(t, 12.5, p["price"])
	require.Equal(t, float64(10), p["stock"])
	require.Equal(t, []any{"blue", "ceramic"}, p["tags"])
	require.Equal(t, []any{"https://img.example/a.png", "https://img.example/b,c.png"}, p["images"])
}

func TestLoginRejected(t *testing.T) {
	setup(t)

	out, err := run(t, "", "login", "--email", "a@b.com", "--password", "wrong")
	require.ErrorIs(t, err, errReported)
	require.Equal(t, "Logging in...\nInvalid credentials\n", out)

	out, err = run(t, "", "whoami")
	require.ErrorIs(t, err, errReported)
	require.Equal(t, "Not logged in\n", out)
}

func TestProductWithoutSessionFails(t *testing.T) {
	api, _ := setup(t)

	out, err := run(t, "", "product", "create",
		"--name", "Mug", "--sku", "MUG-1", "--description", "Blue mug",
		"--category", "kitchen", "--price", "1", "--stock", "1")
	require.ErrorIs(t, err, errReported)
	require.Equal(t, "Creating...\nFailed to create product\n", out)
	require.Empty(t, api.created())
}

func TestProductValidationError(t *testing.T) {
	api, _ := setup(t)

	out, err := run(t, "", "product", "create", "--name", "Mug", "--stock", "1.5")
	require.ErrorContains(t, err, "product not submitted")
	require.NotContains(t, out, "Creating...")
	require.Empty(t, api.created())
}

func TestLogout(t *testing.T) {
	setup(t)

	_, err := run(t, "", "login", "--email", "a@b.com", "--password", "x")
	require.NoError(t, err)

	out, err := run(t, "", "logout")
	require.NoError(t, err)
	require.Equal(t, "Logged out\n", out)

	_, err = run(t, "", "whoami")
	require.ErrorIs(t, err, errReported)
}

func TestMask(t *testing.T) {
	require.Equal(t, "****", mask("abc"))
	require.Equal(t, "…c123", mask("abc123"))
}
