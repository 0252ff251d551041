// Package console is the headless view layer: navigation state, edit forms,
// and dialogs. It renders nothing; it owns the state the rendering layer
// would bind to.
package console

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/servly/admin-console/guard"
)

// Navigator tracks the current location. It implements api.Navigator so the
// HTTP adapter can force a sign-in redirect when the server rejects the
// session.
type Navigator struct {
	mu       sync.Mutex
	location string
	from     string
	guard    *guard.Guard
	log      zerolog.Logger
}

// NavigatorOption configures the Navigator.
type NavigatorOption func(*Navigator)

// WithLogger sets a structured logger for the navigator.
func WithLogger(l zerolog.Logger) NavigatorOption {
	return func(n *Navigator) { n.log = l }
}

// NewNavigator creates a navigator at the root location, guarded by g.
func NewNavigator(g *guard.Guard, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		location: "/",
		guard:    g,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// To navigates to location, subject to the guard. A denied navigation lands
// on the sign-in route with the requested location preserved.
func (n *Navigator) To(location string) {
	decision := n.guard.Check(location)

	n.mu.Lock()
	defer n.mu.Unlock()
	if decision.Allowed {
		n.location = location
		return
	}
	n.from = decision.From
	n.location = decision.RedirectTo
	n.log.Debug().Str("from", decision.From).Msg("navigation denied, redirecting to sign-in")
}

// ForceSignIn implements api.Navigator: a hard redirect to the sign-in entry
// point, preserving the interrupted location.
func (n *Navigator) ForceSignIn() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.location != guard.SignInRoute {
		n.from = n.location
	}
	n.location = guard.SignInRoute
}

// Location returns the current location.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// From returns the location that was interrupted by the last sign-in
// redirect, empty if none.
func (n *Navigator) From() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.from
}

// Resume navigates back to the interrupted location after a successful
// login, defaulting to the root.
func (n *Navigator) Resume() {
	n.mu.Lock()
	target := n.from
	n.from = ""
	n.mu.Unlock()

	if target == "" {
		target = "/"
	}
	n.To(target)
}
