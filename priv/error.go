package priv

import "errors"

var (
	// ErrUnsupported is returned by every operation that needs the
	// native privilege interface, on platforms that lack it.
	ErrUnsupported = errors.New("process privilege sets are not supported on this platform")

	// ErrReleased is returned when a Set is used after Release.
	ErrReleased = errors.New("privilege set has been released")

	// ErrUnknownPrivilege is returned when a privilege or privilege set
	// name is not recognized by the running system.
	ErrUnknownPrivilege = errors.New("unknown privilege")
)
