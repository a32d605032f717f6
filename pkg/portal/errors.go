package portal

import "errors"

// Error kinds raised by the transfer pipeline. Steps wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// while still seeing the underlying cause in the message.
var (
	// ErrSessionInit covers browser launch, context/page creation, and
	// initial navigation failures.
	ErrSessionInit = errors.New("session initialization failed")

	// ErrAuthentication covers login form failures and an unverified login
	// (still on the sign-in page after submitting credentials).
	ErrAuthentication = errors.New("authentication failed")

	// ErrUploadInteraction covers unexpected failures while interacting with
	// the transfer controls. A missing optional control is not an error.
	ErrUploadInteraction = errors.New("upload interaction failed")

	// ErrTransferTimeout covers a transfer that never reached a terminal
	// status, or surfaced an explicit error indicator.
	ErrTransferTimeout = errors.New("transfer did not complete")
)
