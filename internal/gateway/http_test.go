package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type staticCreds string

func (s staticCreds) Credential(context.Context) (string, bool) { return string(s), s != "" }

type requestLog struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reqs = append(l.reqs, r.Clone(context.Background()))
}

func (l *requestLog) all() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.reqs...)
}

// fakeAPI mimics the catalog backend: login is open, products need the cookie.
func fakeAPI(t *testing.T, seen *requestLog) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			seen.add(req)
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body["password"] != "x" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":{"accessToken":"abc123"}}`))
	})
	auth := func(w http.ResponseWriter, req *http.Request) bool {
		c, err := req.Cookie("accessToken")
		if err != nil || c.Value != "abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		if auth(w, req) {
			_, _ = w.Write([]byte(`[]`))
		}
	})
	r.Post("/api/products", func(w http.ResponseWriter, req *http.Request) {
		if auth(w, req) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"p1"}`))
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, base string, creds CredentialSource) *HTTPGateway {
	t.Helper()
	gw, err := NewHTTPGateway(Options{BaseURL: base, Creds: creds, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return gw
}

func TestLoginOmitsCredentials(t *testing.T) {
	seen := &requestLog{}
	srv := fakeAPI(t, seen)
	gw := newGateway(t, srv.URL, staticCreds("abc123"))

	resp, err := gw.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   map[string]string{"email": "a@b.com", "password": "x"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"token":{"accessToken":"abc123"}}`, string(resp.Body))

	reqs := seen.all()
	require.Len(t, reqs, 1)
	require.Empty(t, reqs[0].Cookies())
	require.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestIncludeAttachesSessionCookie(t *testing.T) {
	seen := &requestLog{}
	srv := fakeAPI(t, seen)
	gw := newGateway(t, srv.URL, staticCreds("abc123"))

	resp, err := gw.Do(context.Background(), Request{
		Method:      http.MethodPost,
		Path:        PathProducts,
		Body:        map[string]any{"name": "Mug"},
		Credentials: CredentialsInclude,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	c, err := seen.all()[0].Cookie("accessToken")
	require.NoError(t, err)
	require.Equal(t, "abc123", c.Value)
}

func TestInvalidTokenIsNotSentMangled(t *testing.T) {
	seen := &requestLog{}
	srv := fakeAPI(t, seen)
	var logBuf bytes.Buffer
	gw, err := NewHTTPGateway(Options{
		BaseURL: srv.URL,
		Creds:   staticCreds(`abc"123;x`),
		Logger:  zerolog.New(&logBuf),
	})
	require.NoError(t, err)

	_, err = gw.Do(context.Background(), Request{
		Method:      http.MethodGet,
		Path:        PathProducts,
		Credentials: CredentialsInclude,
	})
	var rj *RejectedError
	require.ErrorAs(t, err, &rj)

	_, err = seen.all()[0].Cookie("accessToken")
	require.ErrorIs(t, err, http.ErrNoCookie)
	require.Contains(t, logBuf.String(), "not a valid cookie value")
}

func TestRejectedReply(t *testing.T) {
	seen := &requestLog{}
	srv := fakeAPI(t, seen)
	gw := newGateway(t, srv.URL, nil)

	resp, err := gw.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   map[string]string{"email": "a@b.com", "password": "wrong"},
	})
	var rj *RejectedError
	require.ErrorAs(t, err, &rj)
	require.Equal(t, http.StatusUnauthorized, rj.StatusCode)
	require.NotNil(t, resp)
	require.False(t, resp.OK())
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	gw := newGateway(t, base, nil)
	_, err := gw.Do(context.Background(), Request{Method: http.MethodGet, Path: PathProducts})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.False(t, errors.As(err, new(*RejectedError)))
}

func TestProbe(t *testing.T) {
	seen := &requestLog{}
	srv := fakeAPI(t, seen)

	require.True(t, Probe(context.Background(), newGateway(t, srv.URL, staticCreds("abc123")), 0))
	require.Equal(t, "1", seen.all()[0].URL.Query().Get("limit"))

	require.False(t, Probe(context.Background(), newGateway(t, srv.URL, staticCreds("")), 1))
	require.False(t, Probe(context.Background(), newGateway(t, srv.URL, staticCreds("stale")), 1))
}

func TestNewHTTPGatewayRejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPGateway(Options{BaseURL: "localhost:5000"})
	require.Error(t, err)
}
