package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBodySize    = 8 << 20
)

// Request describes one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   *MultipartForm
}

// MultipartForm switches the request to multipart/form-data encoding.
type MultipartForm struct {
	Fields map[string]string
	Files  []FormFile
}

type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Response is a successful (2xx) HTTP response.
type Response struct {
	Status int
	Body   []byte
}

type TransportConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64
	RateBurst  int
	HTTPClient *http.Client
}

// Transport sends requests to the configured base URL.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logrus.Logger
}

func NewTransport(cfg TransportConfig, logger *logrus.Logger) (*Transport, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	t := &Transport{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		log:        logger,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
		logger.Infof("Transport: Rate limit enabled (%.2f req/s, burst %d)", cfg.RateLimit, burst)
	}
	logger.Infof("Transport: Base URL %s, timeout %s", t.baseURL, httpClient.Timeout)
	return t, nil
}

func (t *Transport) URL(path string, query url.Values) string {
	u := t.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// NewHTTPRequest builds the undecorated request for req.
func (t *Transport) NewHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	contentType := "application/json"

	switch {
	case req.Form != nil:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for k, v := range req.Form.Fields {
			if err := mw.WriteField(k, v); err != nil {
				return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
			}
		}
		for _, f := range req.Form.Files {
			part, err := mw.CreateFormFile(f.Field, f.Filename)
			if err != nil {
				return nil, fmt.Errorf("failed to create form file %s: %w", f.Filename, err)
			}
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, fmt.Errorf("failed to copy form file %s: %w", f.Filename, err)
			}
		}
		if err := mw.Close(); err != nil {
			return nil, fmt.Errorf("failed to close multipart body: %w", err)
		}
		body = buf
		contentType = mw.FormDataContentType()
	case req.Body != nil:
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, t.URL(req.Path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	return httpReq, nil
}

// Send performs one round trip. A cancelled ctx yields ErrCancelled, a
// missing response yields a TransportError with Status 0 and a non-2xx
// status yields a TransportError carrying the body.
func (t *Transport) Send(ctx context.Context, req *http.Request) (*Response, error) {
	if cancelled(ctx) {
		return nil, cancelledErr(ctx)
	}
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			if cancelled(ctx) {
				return nil, cancelledErr(ctx)
			}
			return nil, &TransportError{Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	resp, err := t.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		if cancelled(ctx) {
			return nil, cancelledErr(ctx)
		}
		t.log.Warnf("Transport: %s %s failed: %v", req.Method, req.URL.Path, err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if cancelled(ctx) {
			return nil, cancelledErr(ctx)
		}
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.log.Debugf("Transport: %s %s returned status %d", req.Method, req.URL.Path, resp.StatusCode)
		return nil, &TransportError{Status: resp.StatusCode, Body: body}
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}

// cancelled reports caller cancellation. A deadline set by the caller is
// treated as a timeout, not a cancellation.
func cancelled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

func cancelledErr(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
}
