package simmatrix

import "errors"

var (
	// ErrIndexOutOfRange reports a node index outside [0, Size()).
	ErrIndexOutOfRange = errors.New("node index out of range")
	// ErrInvalidScore reports a similarity outside [0,1] or a diagonal write
	// other than 1.
	ErrInvalidScore = errors.New("invalid similarity score")
	// ErrInvalidArgument reports a malformed constructor argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
