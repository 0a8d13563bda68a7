package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/config"
	"shop_client/internal/auth"
	"shop_client/internal/clients"
	"shop_client/internal/domain"
	"shop_client/internal/session"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:     baseURL,
		APITimeout:     2 * time.Second,
		APIRateBurst:   1,
		LoginRoute:     "/login",
		Locale:         "en",
		SessionBackend: config.SessionBackendMemory,
	}
}

func fakeAPI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok123","user":{"id":"u1","name":"Admin","email":"admin@example.com","role":"admin"}}}`))
	})
	mux.HandleFunc("/api/admin/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"u1","name":"Admin","email":"admin@example.com","role":"admin"}}`))
	})
	mux.HandleFunc("/api/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"products":[],"pagination":{"page":1,"limit":10}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApp_LoginThenAuthenticatedCalls(t *testing.T) {
	srv := fakeAPI(t)
	nav := auth.NewRouteTracker("/login")
	a, err := New(context.Background(), testConfig(srv.URL+"/api"), Options{Navigator: nav}, quietLogger())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Start(context.Background()))
	assert.Equal(t, auth.StatusAnonymous, a.Auth.State().Status)

	creds := domain.Credentials{Username: "admin", Password: "secret"}
	require.NoError(t, a.Validator.Validate(creds))
	_, err = a.Auth.Login(context.Background(), creds)
	require.NoError(t, err)

	page, err := a.Services.Products.GetAll(context.Background(), domain.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
}

func TestApp_StaleStoredSessionGoesAnonymous(t *testing.T) {
	srv := fakeAPI(t)
	backend := session.NewMemoryBackend()
	require.NoError(t, backend.Save(context.Background(), "expired", []byte(`{"id":"u1","name":"Admin"}`)))

	nav := auth.NewRouteTracker("/dashboard")
	a, err := New(context.Background(), testConfig(srv.URL+"/api"), Options{Navigator: nav, Backend: backend}, quietLogger())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Start(context.Background()))
	assert.Equal(t, auth.StatusAnonymous, a.Auth.State().Status)
	assert.False(t, a.Sessions.Get().Present())
	assert.Equal(t, "/login", nav.CurrentRoute())

	_, err = a.Services.Products.GetAll(context.Background(), domain.ListParams{})
	assert.True(t, clients.IsUnauthenticated(err))
}

func TestApp_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := fakeAPI(t)

	cfg := testConfig(srv.URL + "/api")
	cfg.SessionBackend = config.SessionBackendRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"
	cfg.SessionRedisPrefix = "test:"

	a, err := New(context.Background(), cfg, Options{Registerer: prometheus.NewRegistry()}, quietLogger())
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background()))
	_, err = a.Auth.Login(context.Background(), domain.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	token, err := mr.Get("test:" + session.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	a2, err := New(context.Background(), cfg, Options{}, quietLogger())
	require.NoError(t, err)
	defer a2.Close()
	require.NoError(t, a2.Start(context.Background()))
	assert.Equal(t, auth.StatusAuthenticated, a2.Auth.State().Status)
}
