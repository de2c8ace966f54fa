package session

import "context"

// Session is the current identity and privilege state of the client process.
// The zero value is the anonymous session.
type Session struct {
	UserID   string
	Username string
	IsAdmin  bool

	// Token is the opaque bearer credential issued at login. Command-level
	// consumers gate on Authenticated(), never on the token itself.
	Token string
}

// Authenticated reports whether the session belongs to a signed-in user.
// Presence of UserID is the one capability check used everywhere; IsAdmin
// must only be consulted after Authenticated returns true.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Anonymous returns the anonymous session.
func Anonymous() Session {
	return Session{}
}

// Identity is what the remote identity endpoint returns for a valid token.
type Identity struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// Verifier validates a bearer token against the remote identity endpoint.
// Implementations return a non-nil Identity only when the server vouched for
// the token; any transport failure, rejection, or malformed response is an
// error.
type Verifier interface {
	Details(ctx context.Context, token string) (*Identity, error)
}

// Status describes where the session is in its lifecycle.
type Status int

const (
	StatusAnonymous Status = iota
	StatusReconciling
	StatusAuthenticated
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusReconciling:
		return "reconciling"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}
