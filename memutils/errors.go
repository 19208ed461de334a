package memutils

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory is returned when the raw storage for a new chunk cannot be obtained, either because
	// the request is larger than the element type can address or because it would exceed a configured
	// byte limit
	ErrOutOfMemory error = errors.New("out of memory")
	// ErrInvalidSize is returned when an allocation is requested with a negative element count
	ErrInvalidSize error = errors.New("allocation size must not be negative")
	// ErrConstruction marks errors returned by an element's initializer during in-place construction
	ErrConstruction error = errors.New("element construction failed")
	// ErrAllocatorReleased is returned when an allocator is used after Release has been called on it
	ErrAllocatorReleased error = errors.New("allocator has been released")
)
