package reactive

import "github.com/vango-dev/reactor/internal/errors"

var (
	// ErrReadonly is returned (and logged as a warning) when writing to a
	// readonly wrapper. The write is dropped and nothing is triggered.
	ErrReadonly = errors.New("R001")

	// ErrReadonlyDelete is returned when deleting from a readonly wrapper.
	ErrReadonlyDelete = errors.New("R002")

	// ErrIndexRange is returned for negative array indices.
	ErrIndexRange = errors.New("R003")

	// ErrStopped is reported when Run is called on a stopped effect.
	ErrStopped = errors.New("R004")
)
