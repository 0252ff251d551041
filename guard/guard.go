// Package guard gates navigation into protected views on the session state.
package guard

// SignInRoute is the sign-in entry point unauthenticated navigation is sent
// to.
const SignInRoute = "/signin"

// Sessions is the session store surface the guard consults.
type Sessions interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a guard check. From preserves the originally
// requested location so the login flow can return to it.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

// Guard allows or denies navigation into the protected subtree.
type Guard struct {
	sessions Sessions
}

// New creates a guard over the given session store.
func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions}
}

// Check decides whether location may render. Denials redirect to the sign-in
// entry point with the requested location preserved.
func (g *Guard) Check(location string) Decision {
	if location == SignInRoute || g.sessions.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{
		Allowed:    false,
		RedirectTo: SignInRoute,
		From:       location,
	}
}
