package auth

import "github.com/cloudlibrary/cloudlib/internal/domain"

// Status is the signed-in state shown by the login/register controls
type Status int

const (
	StatusAnonymous Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "Anonymous"
	case StatusAuthenticating:
		return "Authenticating"
	case StatusAuthenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Intent distinguishes the two affordances
type Intent int

const (
	IntentLogin Intent = iota
	IntentRegister
)

// String returns a human-readable representation of the intent
func (i Intent) String() string {
	switch i {
	case IntentLogin:
		return "login"
	case IntentRegister:
		return "register"
	default:
		return "unknown"
	}
}

// Controls holds the auth state for one screen. It holds no credentials;
// it only records which attempt is outstanding and how it ended.
//
// Not safe for concurrent use: owned by the bubbletea Update loop.
type Controls struct {
	status  Status
	intent  Intent
	user    domain.User
	err     error
	attempt uint64
}

// NewControls creates anonymous controls
func NewControls() *Controls {
	return &Controls{}
}

func (c *Controls) Status() Status     { return c.status }
func (c *Controls) Intent() Intent     { return c.intent }
func (c *Controls) User() domain.User  { return c.user }
func (c *Controls) Err() error         { return c.err }
func (c *Controls) AttemptID() uint64  { return c.attempt }
func (c *Controls) Busy() bool         { return c.status == StatusAuthenticating }
func (c *Controls) SignedIn() bool     { return c.status == StatusAuthenticated }
func (c *Controls) ShowsButtons() bool { return c.status != StatusAuthenticated }

// Enabled reports whether the login and register buttons accept activation
func (c *Controls) Enabled() bool {
	return c.status == StatusAnonymous
}

// Begin starts an attempt. Only one attempt may be outstanding; while
// Authenticating (or once signed in) it returns false and the caller must
// not contact the auth provider.
func (c *Controls) Begin(intent Intent) (uint64, bool) {
	if c.status != StatusAnonymous {
		return 0, false
	}
	c.attempt++
	c.status = StatusAuthenticating
	c.intent = intent
	c.err = nil
	return c.attempt, true
}

// Succeed records a successful attempt. Results for other attempts are dropped.
func (c *Controls) Succeed(id uint64, user domain.User) bool {
	if !c.accepts(id) {
		return false
	}
	c.status = StatusAuthenticated
	c.user = user
	return true
}

// Fail records a rejected attempt and re-enables the controls.
func (c *Controls) Fail(id uint64, err error) bool {
	if !c.accepts(id) {
		return false
	}
	c.status = StatusAnonymous
	c.err = err
	return true
}

// SignOut forgets the in-memory session
func (c *Controls) SignOut() {
	if c.status != StatusAuthenticated {
		return
	}
	c.status = StatusAnonymous
	c.user = domain.User{}
	c.err = nil
}

// ClearError dismisses the last failure reason
func (c *Controls) ClearError() {
	c.err = nil
}

func (c *Controls) accepts(id uint64) bool {
	return c.status == StatusAuthenticating && id == c.attempt
}
