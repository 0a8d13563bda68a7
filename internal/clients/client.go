package clients

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"shop_client/internal/session"
)

// RequestObserver receives one notification per finished call.
type RequestObserver interface {
	ObserveRequest(method, path, outcome string, status int, elapsed time.Duration)
}

// Outcomes reported to a RequestObserver.
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeNetwork   = "network"
	OutcomeCancelled = "cancelled"
)

// Client is the handle every service module is built on: it composes the
// transport, the request decorators and the normalizer.
type Client struct {
	transport  *Transport
	sessions   session.Reader
	normalizer *Normalizer
	decorators []RequestDecorator
	observer   RequestObserver
	log        *logrus.Logger
}

type ClientOption func(*Client)

func WithDecorators(decorators ...RequestDecorator) ClientOption {
	return func(c *Client) {
		c.decorators = append(c.decorators, decorators...)
	}
}

func WithObserver(o RequestObserver) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

func NewClient(transport *Transport, sessions session.Reader, normalizer *Normalizer, logger *logrus.Logger, opts ...ClientOption) *Client {
	c := &Client{
		transport:  transport,
		sessions:   sessions,
		normalizer: normalizer,
		log:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildRequest produces the final request from the base request and a
// session snapshot.
func (c *Client) BuildRequest(ctx context.Context, req Request, snap session.Snapshot) (*http.Request, error) {
	httpReq, err := c.transport.NewHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, decorate := range c.decorators {
		decorate(httpReq, snap)
	}
	return httpReq, nil
}

// Do sends req and decodes the envelope payload into out (which may be nil).
// The error is nil, ErrCancelled or an *APIError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	start := time.Now()
	if cancelled(ctx) {
		c.observe(req, OutcomeCancelled, 0, start)
		return cancelledErr(ctx)
	}

	httpReq, err := c.BuildRequest(ctx, req, c.sessions.Get())
	if err != nil {
		c.log.Errorf("Client: Failed to build %s %s: %v", req.Method, req.Path, err)
		c.observe(req, OutcomeError, 0, start)
		return c.normalizer.Normalize(err)
	}

	c.log.Debugf("Client: %s %s", httpReq.Method, httpReq.URL.String())
	resp, err := c.transport.Send(ctx, httpReq)
	if err != nil {
		if IsCancelled(err) {
			c.log.Debugf("Client: %s %s cancelled", httpReq.Method, req.Path)
			c.observe(req, OutcomeCancelled, 0, start)
			return err
		}
		normalized := c.normalizer.Normalize(err)
		var te *TransportError
		if errors.As(err, &te) && te.Status == 0 {
			c.observe(req, OutcomeNetwork, 0, start)
		} else if te != nil {
			c.observe(req, OutcomeError, te.Status, start)
		}
		return normalized
	}

	if err := c.normalizer.Unwrap(resp, out); err != nil {
		c.observe(req, OutcomeError, resp.Status, start)
		return err
	}
	c.observe(req, OutcomeSuccess, resp.Status, start)
	return nil
}

func (c *Client) observe(req Request, outcome string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	c.observer.ObserveRequest(method, req.Path, outcome, status, time.Since(start))
}
