package memory

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arena/memutils"
)

// Allocator is the capability set that allocator-aware containers depend on. An Allocator is bound
// to a single element type T: storage is handed out as []T, an element address is a *T, and sizes
// and differences are ints.
//
// Allocators are not safe for concurrent use.
type Allocator[T any] interface {
	// Allocate returns storage for n contiguous elements. An n of 0 returns a nil slice and no error
	// without side effects. A negative n returns memutils.ErrInvalidSize, and storage that cannot be
	// obtained returns memutils.ErrOutOfMemory.
	Allocate(n int) ([]T, error)
	// Deallocate returns storage obtained from Allocate. Implementations may ignore it entirely; callers
	// must not assume the storage becomes reusable.
	Deallocate(p []T)
	// Construct initializes the element at p in place by zeroing it and then running init on it. A nil
	// init leaves the zero value. If init fails, the element is left zeroed and the error is returned
	// marked with memutils.ErrConstruction. Allocators that track constructed elements refuse to
	// construct over an element that has not been destroyed. Construct never allocates.
	Construct(p *T, init func(*T) error) error
	// Destroy runs the element's Destroyer contract, if it has one, and zeroes the element. Destroy never
	// deallocates.
	Destroy(p *T)
	// MaxSize returns the largest element count that could be requested from Allocate without
	// overflowing the size of the address space
	MaxSize() int
	// Equal returns true if storage allocated by this allocator can be deallocated by other
	Equal(other Allocator[T]) bool
	// Policy returns the allocation policy of this allocator, which can be used to produce an equivalent
	// allocator for a different element type via Bind or Rebind
	Policy() Policy
	// SelectOnCopy returns the allocator a container should use when it is copied from a container
	// using this allocator
	SelectOnCopy() Allocator[T]
	// Release tears down the allocator, destroying any elements it still tracks and dropping its storage
	Release() error
}

// NotEqual returns true if storage allocated by left cannot be deallocated by right
func NotEqual[T any](left, right Allocator[T]) bool {
	return !left.Equal(right)
}

// Destroyer is implemented by element types that need to run logic before their storage is abandoned.
// Destroy must not fail.
type Destroyer interface {
	Destroy()
}

// Cloner is implemented by element types that need a deep copy when they are copied into a container.
// An error returned from Clone is treated as a failed construction.
type Cloner[T any] interface {
	Clone() (T, error)
}

// CopyOf returns an initializer that copy-constructs value into an element. If value implements
// Cloner, the element receives the result of Clone, otherwise the element receives value itself.
func CopyOf[T any](value T) func(*T) error {
	return func(p *T) error {
		cloner, isCloner := any(&value).(Cloner[T])
		if !isCloner {
			*p = value
			return nil
		}

		clone, err := cloner.Clone()
		if err != nil {
			return err
		}

		*p = clone
		return nil
	}
}

func constructInPlace[T any](p *T, init func(*T) error) error {
	if p == nil {
		return errors.New("attempted to construct an element at a nil address")
	}

	var zero T
	*p = zero

	if init == nil {
		return nil
	}

	err := init(p)
	if err != nil {
		*p = zero
		return errors.Mark(errors.Wrap(err, "constructing element"), memutils.ErrConstruction)
	}

	return nil
}

func destroyInPlace[T any](p *T) {
	if p == nil {
		return
	}

	destroyer, isDestroyer := any(p).(Destroyer)
	if isDestroyer {
		destroyer.Destroy()
	}

	var zero T
	*p = zero
}
