// Package session holds the authenticated user's credential and identity
// state. One store instance owns the persisted session file; every other
// component reads through it.
package session

// State is the authentication state machine position.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	AuthFailed
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case AuthFailed:
		return "auth_failed"
	}
	return "unknown"
}

// Snapshot is the session's externally visible state. The token fields and
// identity survive restarts; IsLoading is transient.
type Snapshot struct {
	AccessToken     string `json:"accessToken"`
	RefreshToken    string `json:"refreshToken"`
	Role            string `json:"role"`
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"-"`
}
