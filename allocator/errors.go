package allocator

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidCapacity is returned by New when the capacity is not a power of two
	ErrInvalidCapacity = errors.New("buddy: capacity must be a power of two")

	// ErrInvalidSize is returned by Allocate for a non-positive size
	ErrInvalidSize = errors.New("buddy: size must be positive")
)
