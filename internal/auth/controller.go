package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"shop_client/internal/clients"
	"shop_client/internal/domain"
	"shop_client/internal/services"
	"shop_client/internal/session"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusLoading
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State is what the rest of the application sees of the session.
type State struct {
	Status  Status
	Profile *domain.UserProfile
}

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrClosed           = errors.New("auth controller closed")
)

// SessionStore is the part of session.Store the controller drives.
type SessionStore interface {
	Get() session.Snapshot
	Set(ctx context.Context, token string, profile domain.UserProfile) error
	Clear(ctx context.Context) error
}

// Controller owns the session lifecycle. It is the only component that
// mutates the session store.
//
// Every transition bumps gen; a background result whose generation no longer
// matches is discarded. mu is never held across an API call.
type Controller struct {
	store      SessionStore
	api        services.AuthService
	nav        Navigator
	loginRoute string
	log        *logrus.Logger

	mu           sync.Mutex
	state        State
	gen          uint64
	started      bool
	closed       bool
	cancelVerify context.CancelFunc
	subs         map[int]chan State
	nextSub      int

	ready     chan struct{}
	readyOnce sync.Once
}

func NewController(store SessionStore, api services.AuthService, nav Navigator, loginRoute string, logger *logrus.Logger) *Controller {
	return &Controller{
		store:      store,
		api:        api,
		nav:        nav,
		loginRoute: loginRoute,
		log:        logger,
		state:      State{Status: StatusUnknown},
		subs:       make(map[int]chan State),
		ready:      make(chan struct{}),
	}
}

// Start resolves the initial state. With a stored session it moves to
// Loading and verifies the profile in the background; cancelling ctx or
// calling Close aborts the verification without any further transition.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true

	snap := c.store.Get()
	if !snap.Present() {
		if snap.Token != "" {
			c.log.Warn("AuthController: Stored credential has no usable profile, clearing it")
			c.clearLocked(ctx)
		}
		c.setStateLocked(State{Status: StatusAnonymous})
		c.markReady()
		c.mu.Unlock()
		return
	}

	c.setStateLocked(State{Status: StatusLoading, Profile: snap.Profile})
	verifyCtx, cancel := context.WithCancel(ctx)
	c.cancelVerify = cancel
	gen := c.gen
	c.mu.Unlock()

	c.log.Infof("AuthController: Verifying stored session for user %s", snap.Profile.ID)
	go c.verify(verifyCtx, gen, snap.Token)
}

func (c *Controller) verify(ctx context.Context, gen uint64, token string) {
	defer c.markReady()

	profile, err := c.api.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen || ctx.Err() != nil || clients.IsCancelled(err) {
		c.log.Debug("AuthController: Session verification superseded, result discarded")
		return
	}
	c.cancelVerify = nil

	if err != nil {
		c.log.Warnf("AuthController: Stored session rejected: %v", err)
		c.clearLocked(ctx)
		c.setStateLocked(State{Status: StatusAnonymous})
		return
	}

	if err := c.store.Set(ctx, token, *profile); err != nil {
		c.log.Warnf("AuthController: Failed to persist refreshed profile: %v", err)
	}
	c.setStateLocked(State{Status: StatusAuthenticated, Profile: profile})
	c.log.Infof("AuthController: Session restored for user %s", profile.ID)
}

// Login exchanges credentials for a session. On failure the state is left
// as it was and the error is returned.
func (c *Controller) Login(ctx context.Context, creds domain.Credentials) (*domain.UserProfile, error) {
	res, err := c.api.Login(ctx, creds)
	if err != nil {
		if !clients.IsCancelled(err) {
			c.log.Warnf("AuthController: Login failed for '%s': %v", creds.Username, err)
		}
		return nil, err
	}
	if res.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	c.bumpLocked()

	if err := c.store.Set(context.WithoutCancel(ctx), res.Token, res.User); err != nil {
		c.log.Errorf("AuthController: Failed to persist session: %v", err)
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	profile := res.User
	c.setStateLocked(State{Status: StatusAuthenticated, Profile: &profile})
	c.markReady()
	c.log.Infof("AuthController: User %s logged in", profile.ID)
	return &profile, nil
}

// Logout always ends with an empty store and the Anonymous state. A failed
// server-side logout is only logged.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.bumpLocked()
	c.mu.Unlock()

	if err := c.api.Logout(ctx); err != nil {
		c.log.Warnf("AuthController: Server logout failed, clearing local session anyway: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumpLocked()
	c.clearLocked(ctx)
	c.setStateLocked(State{Status: StatusAnonymous})
	c.markReady()
	c.log.Info("AuthController: Logged out")
	return nil
}

// Refresh re-fetches the profile of an authenticated session. On failure
// the session is cleared and the error returned; a cancelled refresh
// changes nothing.
func (c *Controller) Refresh(ctx context.Context) (*domain.UserProfile, error) {
	c.mu.Lock()
	if c.state.Status != StatusAuthenticated {
		c.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	gen := c.gen
	c.mu.Unlock()

	profile, err := c.api.Me(ctx)
	if clients.IsCancelled(err) {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if gen != c.gen {
		c.log.Debug("AuthController: Session changed during refresh, result discarded")
		if err != nil {
			return nil, err
		}
		return profile, nil
	}
	c.bumpLocked()

	if err != nil {
		c.log.Warnf("AuthController: Profile refresh failed, clearing session: %v", err)
		c.clearLocked(ctx)
		c.setStateLocked(State{Status: StatusAnonymous})
		return nil, err
	}

	token := c.store.Get().Token
	if err := c.store.Set(context.WithoutCancel(ctx), token, *profile); err != nil {
		c.log.Warnf("AuthController: Failed to persist refreshed profile: %v", err)
	}
	c.setStateLocked(State{Status: StatusAuthenticated, Profile: profile})
	return profile, nil
}

// HandleUnauthorized drops the session after the server rejected the
// credential and redirects to the login route unless already there.
func (c *Controller) HandleUnauthorized() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.bumpLocked()
	c.clearLocked(context.Background())
	c.setStateLocked(State{Status: StatusAnonymous})
	c.markReady()

	if RedirectToLogin(c.nav, c.loginRoute) {
		c.log.Infof("AuthController: Redirected to %s", c.loginRoute)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	if st.Profile != nil {
		p := *st.Profile
		st.Profile = &p
	}
	return st
}

// Subscribe delivers state changes. Slow subscribers only see the latest
// state. The returned func unsubscribes.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Done is closed once the initial state is settled or its verification
// was abandoned.
func (c *Controller) Done() <-chan struct{} {
	return c.ready
}

// Close cancels a pending verification and stops all further transitions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.bumpLocked()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.markReady()
	c.log.Info("AuthController: Closed")
}

func (c *Controller) bumpLocked() {
	c.gen++
	if c.cancelVerify != nil {
		c.cancelVerify()
		c.cancelVerify = nil
	}
}

func (c *Controller) clearLocked(ctx context.Context) {
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Errorf("AuthController: Failed to clear session store: %v", err)
	}
}

func (c *Controller) setStateLocked(st State) {
	if st.Status == c.state.Status && st.Profile == c.state.Profile {
		return
	}
	c.state = st
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

func (c *Controller) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}
