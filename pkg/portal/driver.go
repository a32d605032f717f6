package portal

import (
	"github.com/entrhq/shuttle/pkg/config"
)

// sessionDriver is the set of portal interactions one attempt performs.
// The orchestrator only sees this interface, which keeps the attempt flow
// testable without a browser.
type sessionDriver interface {
	// Login drives the two-stage sign-in form and verifies it succeeded.
	Login() error

	// InitiateTransfer sets the recipient, attaches the staged files, and
	// triggers the transfer.
	InitiateTransfer(paths []string) error

	// AwaitCompletion blocks until the transfer reaches a terminal state or
	// a bound elapses.
	AwaitCompletion() error

	// CaptureFailure saves a screenshot of the current page, best-effort.
	CaptureFailure()

	// Release tears down the browser session. Idempotent.
	Release()
}

// portalDriver implements sessionDriver against a live Session.
type portalDriver struct {
	session   *Session
	cfg       *config.Config
	selectors *Selectors
}

func (d *portalDriver) Release() {
	d.session.Release()
}
