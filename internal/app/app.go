// Package app assembles the client stack and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"shop_client/config"
	"shop_client/internal/auth"
	"shop_client/internal/clients"
	"shop_client/internal/metrics"
	"shop_client/internal/services"
	"shop_client/internal/session"
	"shop_client/internal/validation"
)

type Options struct {
	Navigator  auth.Navigator
	Registerer prometheus.Registerer
	HTTPClient *http.Client
	// Backend overrides the backend selected by the configuration.
	Backend session.Backend
}

type App struct {
	Config    *config.Config
	Sessions  *session.Store
	Client    *clients.Client
	Services  *services.Services
	Auth      *auth.Controller
	Validator *validation.Validator
	Metrics   *metrics.Observer

	stopMetrics func()
	log         *logrus.Logger
}

// New wires store, transport, client, services and controller. The caller
// must call Close.
func New(ctx context.Context, cfg *config.Config, opts Options, logger *logrus.Logger) (*App, error) {
	backend := opts.Backend
	if backend == nil {
		var err error
		backend, err = newBackend(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	store, err := session.Open(ctx, backend, logger)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	transport, err := clients.NewTransport(clients.TransportConfig{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.APITimeout,
		RateLimit:  cfg.APIRateLimit,
		RateBurst:  cfg.APIRateBurst,
		HTTPClient: opts.HTTPClient,
	}, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	observer := metrics.New(reg)

	normalizer := clients.NewNormalizer(logger)
	client := clients.NewClient(transport, store, normalizer, logger,
		clients.WithDecorators(clients.BearerAuth, clients.RequestID),
		clients.WithObserver(observer),
	)
	svc := services.New(client, logger)

	nav := opts.Navigator
	if nav == nil {
		nav = auth.NewRouteTracker("/")
	}
	controller := auth.NewController(store, svc.Auth, nav, cfg.LoginRoute, logger)
	normalizer.SetUnauthorizedHandler(controller)

	a := &App{
		Config:    cfg,
		Sessions:  store,
		Client:    client,
		Services:  svc,
		Auth:      controller,
		Validator: validation.New(cfg.Locale),
		Metrics:   observer,
		log:       logger,
	}
	a.stopMetrics = a.trackSession()
	return a, nil
}

func newBackend(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (session.Backend, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Infof("App: Using redis session backend (prefix %s)", cfg.SessionRedisPrefix)
		return session.NewRedisBackend(client, cfg.SessionRedisPrefix), nil
	case config.SessionBackendMemory:
		logger.Info("App: Using in-memory session backend")
		return session.NewMemoryBackend(), nil
	default:
		logger.Infof("App: Using file session backend in %s", cfg.SessionDir)
		return session.NewFileBackend(cfg.SessionDir)
	}
}

// trackSession mirrors controller state into the session gauge.
func (a *App) trackSession() func() {
	updates, unsubscribe := a.Auth.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range updates {
			a.Metrics.SetAuthenticated(st.Status == auth.StatusAuthenticated)
		}
	}()
	return func() {
		unsubscribe()
		<-done
	}
}

// Start resolves the initial session state and waits until it settles or
// ctx ends.
func (a *App) Start(ctx context.Context) error {
	a.Auth.Start(ctx)
	select {
	case <-a.Auth.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) Close() error {
	a.Auth.Close()
	a.stopMetrics()
	if err := a.Sessions.Close(); err != nil {
		a.log.Errorf("App: Failed to close session store: %v", err)
		return err
	}
	a.log.Info("App: Closed")
	return nil
}
