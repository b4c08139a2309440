package plan

import "errors"

var (
	// ErrTimeout means the plan server did not answer within the bound.
	ErrTimeout = errors.New("plan server timed out")
	// ErrTransport covers connection-level failures other than the known
	// "closed without close_notify" quirk.
	ErrTransport = errors.New("plan server unreachable")
	// ErrInvalidFormat means a response arrived but is not an iCalendar
	// document.
	ErrInvalidFormat = errors.New("plan server returned invalid data")
)
