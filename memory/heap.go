package memory

import (
	"unsafe"

	"github.com/vkngwrapper/arena/memutils"
)

// Heap is the general-purpose allocator: every Allocate call obtains fresh storage from the Go heap,
// and storage is reclaimed by the garbage collector once nothing references it. All Heap allocators
// for the same element type are interchangeable and compare equal.
type Heap[T any] struct {
	elemSize int
}

var _ Allocator[int] = &Heap[int]{}

// NewHeap creates a new Heap allocator for elements of type T
func NewHeap[T any]() *Heap[T] {
	var zero T
	return &Heap[T]{
		elemSize: int(unsafe.Sizeof(zero)),
	}
}

func (h *Heap[T]) Allocate(n int) ([]T, error) {
	err := memutils.CheckCount(n, h.elemSize)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	return makeStorage[T](n)
}

// Deallocate is a no-op: the garbage collector reclaims storage
func (h *Heap[T]) Deallocate(p []T) {}

func (h *Heap[T]) Construct(p *T, init func(*T) error) error {
	return constructInPlace(p, init)
}

func (h *Heap[T]) Destroy(p *T) {
	destroyInPlace(p)
}

func (h *Heap[T]) MaxSize() int {
	return memutils.MaxElements(h.elemSize)
}

func (h *Heap[T]) Equal(other Allocator[T]) bool {
	_, isHeap := other.(*Heap[T])
	return isHeap
}

func (h *Heap[T]) Policy() Policy {
	return HeapPolicy{}
}

func (h *Heap[T]) SelectOnCopy() Allocator[T] {
	return h
}

func (h *Heap[T]) Release() error {
	return nil
}
