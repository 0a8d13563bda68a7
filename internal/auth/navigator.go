package auth

import "sync"

// Navigator is the routing surface the controller redirects through.
type Navigator interface {
	CurrentRoute() string
	Navigate(route string)
}

// RouteTracker is an in-process Navigator that records where the user is.
type RouteTracker struct {
	mu      sync.RWMutex
	current string
	history []string
}

func NewRouteTracker(initial string) *RouteTracker {
	return &RouteTracker{current: initial}
}

func (t *RouteTracker) CurrentRoute() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

func (t *RouteTracker) Navigate(route string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, route)
	t.current = route
}

// History lists every Navigate call in order.
func (t *RouteTracker) History() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.history...)
}

// RedirectToLogin navigates to loginRoute unless nav is already there.
// It reports whether a navigation happened.
func RedirectToLogin(nav Navigator, loginRoute string) bool {
	if nav == nil || nav.CurrentRoute() == loginRoute {
		return false
	}
	nav.Navigate(loginRoute)
	return true
}
