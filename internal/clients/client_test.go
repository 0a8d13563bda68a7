package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/internal/domain"
	"shop_client/internal/session"
)

type staticSessions struct {
	mu   sync.Mutex
	snap session.Snapshot
}

func (s *staticSessions) Get() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

type countingHandler struct{ calls atomic.Int32 }

func (h *countingHandler) HandleUnauthorized() { h.calls.Add(1) }

type recordedCall struct {
	method, path, outcome string
	status                int
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (o *recordingObserver) ObserveRequest(method, path, outcome string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, recordedCall{method, path, outcome, status})
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestClient(t *testing.T, srvURL string, sessions session.Reader, opts ...ClientOption) (*Client, *Normalizer) {
	t.Helper()
	logger := testLogger()
	transport, err := NewTransport(TransportConfig{BaseURL: srvURL + "/api", Timeout: 2 * time.Second}, logger)
	require.NoError(t, err)
	normalizer := NewNormalizer(logger)
	opts = append([]ClientOption{WithDecorators(BearerAuth, RequestID)}, opts...)
	return NewClient(transport, sessions, normalizer, logger, opts...), normalizer
}

func TestNewTransport_RequiresBaseURL(t *testing.T) {
	_, err := NewTransport(TransportConfig{}, testLogger())
	assert.Error(t, err)

	_, err = NewTransport(TransportConfig{BaseURL: "not a url"}, testLogger())
	assert.Error(t, err)
}

func TestTransport_URL(t *testing.T) {
	tr, err := NewTransport(TransportConfig{BaseURL: "http://localhost:8000/api/"}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/admin/products", tr.URL("/admin/products", nil))
	q := domain.ListParams{Page: 2, Limit: 20}.Values()
	assert.Equal(t, "http://localhost:8000/api/admin/products?limit=20&page=2", tr.URL("admin/products", q))
}

func TestBuildRequest_AttachesBearerFromSnapshot(t *testing.T) {
	c, _ := newTestClient(t, "http://example.test", &staticSessions{})

	req, err := c.BuildRequest(context.Background(), Request{Method: http.MethodGet, Path: "/admin/auth/me"}, session.Snapshot{Token: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))

	req, err = c.BuildRequest(context.Background(), Request{Method: http.MethodGet, Path: "/admin/auth/me"}, session.Snapshot{})
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestDo_UnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/admin/products/p1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"p1","name":"Tea","price":12.5}}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &staticSessions{snap: session.Snapshot{Token: "tok123"}})

	var p domain.Product
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/admin/products/p1", Query: map[string][]string{"x": {"1"}}}, &p)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Tea", p.Name)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "x=1", gotQuery)
}

func TestDo_SendsJSONBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &staticSessions{})
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/admin/categories/reorder", Body: domain.ReorderInput{IDs: []string{"c2", "c1"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"c2", "c1"}, body["ids"])
}

func TestDo_MultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "products", r.FormValue("folder"))
		f, hdr, err := r.FormFile("images")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "a.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"url":"/uploads/a.png","filename":"a.png","size":7}]}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &staticSessions{})
	var out []domain.UploadedImage
	err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload/images",
		Form: &MultipartForm{
			Fields: map[string]string{"folder": "products"},
			Files:  []FormFile{{Field: "images", Filename: "a.png", Content: strings.NewReader("PNGDATA")}},
		},
	}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "/uploads/a.png", out[0].URL)
}

func TestDo_ErrorBodyNormalization(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantErrors []domain.FieldError
		wantKind   Kind
	}{
		{
			name:     "message field",
			status:   http.StatusNotFound,
			body:     `{"success":false,"message":"Product not found"}`,
			wantMsg:  "Product not found",
			wantKind: KindAPI,
		},
		{
			name:     "error field fallback",
			status:   http.StatusConflict,
			body:     `{"error":"Slug taken"}`,
			wantMsg:  "Slug taken",
			wantKind: KindAPI,
		},
		{
			name:     "empty body",
			status:   http.StatusInternalServerError,
			body:     ``,
			wantMsg:  DefaultErrorMessage,
			wantKind: KindAPI,
		},
		{
			name:     "non json body",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantMsg:  DefaultErrorMessage,
			wantKind: KindAPI,
		},
		{
			name:    "field errors with alternate keys",
			status:  http.StatusUnprocessableEntity,
			body:    `{"message":"Invalid","errors":[{"field":"name","message":"required"},{"path":"price","msg":"must be positive"},{"message":"bad"}]}`,
			wantMsg: "Invalid",
			wantErrors: []domain.FieldError{
				{Field: "name", Message: "required"},
				{Field: "price", Message: "must be positive"},
				{Field: "unknown", Message: "bad"},
			},
			wantKind: KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := newTestClient(t, srv.URL, &staticSessions{})
			err := c.Do(context.Background(), Request{Path: "/admin/products/x"}, nil)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected *APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantErrors, apiErr.Errors)
			assert.Equal(t, tt.wantKind, apiErr.Kind())
		})
	}
}

func TestDo_SuccessFalseOn2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Stock exhausted"}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &staticSessions{})
	err := c.Do(context.Background(), Request{Path: "/admin/products"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, "Stock exhausted", apiErr.Message)
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	c, _ := newTestClient(t, url, &staticSessions{}, WithObserver(obs))
	err := c.Do(context.Background(), Request{Path: "/admin/orders"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, NetworkErrorMessage, apiErr.Message)
	assert.Equal(t, KindNetwork, apiErr.Kind())
	assert.False(t, IsCancelled(err))

	require.Len(t, obs.calls, 1)
	assert.Equal(t, OutcomeNetwork, obs.calls[0].outcome)
}

func TestDo_UnauthorizedInvokesHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	}))
	defer srv.Close()

	c, normalizer := newTestClient(t, srv.URL, &staticSessions{snap: session.Snapshot{Token: "old"}})
	h := &countingHandler{}
	normalizer.SetUnauthorizedHandler(h)

	err := c.Do(context.Background(), Request{Path: "/admin/products"}, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, int32(1), h.calls.Load())

	apiErr, _ := AsAPIError(err)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestDo_CancelledBeforeDispatch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, &staticSessions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Do(ctx, Request{Path: "/admin/products"}, nil)
	assert.True(t, IsCancelled(err))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
	assert.Equal(t, int32(0), hits.Load())
}

func TestDo_CancelledInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, normalizer := newTestClient(t, srv.URL, &staticSessions{})
	h := &countingHandler{}
	normalizer.SetUnauthorizedHandler(h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Do(ctx, Request{Path: "/admin/orders"}, nil)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, IsCancelled(err))
	case <-time.After(2 * time.Second):
		t.Fatal("request was not cancelled")
	}
	assert.Equal(t, int32(0), h.calls.Load())
}

func TestDo_ObserverRecordsOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/admin/orders/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c, _ := newTestClient(t, srv.URL, &staticSessions{}, WithObserver(obs))

	require.NoError(t, c.Do(context.Background(), Request{Path: "/admin/orders"}, nil))
	require.Error(t, c.Do(context.Background(), Request{Path: "/admin/orders/missing"}, nil))

	require.Len(t, obs.calls, 2)
	assert.Equal(t, recordedCall{"GET", "/admin/orders", OutcomeSuccess, 200}, obs.calls[0])
	assert.Equal(t, recordedCall{"GET", "/admin/orders/missing", OutcomeError, 404}, obs.calls[1])
}

func TestNormalize_PassesCancellationThrough(t *testing.T) {
	n := NewNormalizer(testLogger())
	assert.Nil(t, n.Normalize(nil))
	assert.ErrorIs(t, n.Normalize(ErrCancelled), ErrCancelled)
}
