package memory

import (
	"golang.org/x/exp/slog"
)

// AllocatorKind identifies the family of allocator a Policy produces
type AllocatorKind uint32

const (
	// AllocatorKindHeap indicates a general-purpose allocator backed by the Go heap
	AllocatorKindHeap AllocatorKind = iota
	// AllocatorKindArena indicates a chunked arena allocator
	AllocatorKindArena
)

var allocatorKindMapping = map[AllocatorKind]string{
	AllocatorKindHeap:  "AllocatorKindHeap",
	AllocatorKindArena: "AllocatorKindArena",
}

func (k AllocatorKind) String() string {
	return allocatorKindMapping[k]
}

// Policy is the type-independent half of an allocator: everything needed to build an equivalent
// allocator for another element type. The set of policies is closed; HeapPolicy and ArenaPolicy
// are the only implementations.
type Policy interface {
	Kind() AllocatorKind
	sealed()
}

// HeapPolicy produces Heap allocators. It has no settings.
type HeapPolicy struct{}

func (p HeapPolicy) Kind() AllocatorKind { return AllocatorKindHeap }

func (p HeapPolicy) sealed() {}

// ArenaPolicy contains the settings of an Arena allocator. All fields may be left at their zero value.
type ArenaPolicy struct {
	// ChunkSize is the minimum number of elements in every chunk the arena creates. A single allocation
	// request larger than ChunkSize creates a chunk sized exactly to the request. If ChunkSize is not
	// positive, DefaultChunkSize is used.
	ChunkSize int
	// MaxBytes, if positive, is the maximum number of bytes the arena may hold across all of its chunks.
	// Creating a chunk that would exceed it fails with memutils.ErrOutOfMemory.
	MaxBytes int
	// Logger receives debug records about chunk creation and release. If nil, records are discarded.
	Logger *slog.Logger
}

func (p ArenaPolicy) Kind() AllocatorKind { return AllocatorKindArena }

func (p ArenaPolicy) sealed() {}

// Bind creates a fresh allocator for elements of type U from policy. A nil policy produces a Heap.
func Bind[U any](policy Policy) Allocator[U] {
	switch p := policy.(type) {
	case ArenaPolicy:
		return NewArena[U](p)
	default:
		return NewHeap[U]()
	}
}

// Rebind creates a fresh, empty allocator for elements of type U that uses the same policy as
// allocator. The new allocator shares no storage with the original.
func Rebind[U any, T any](allocator Allocator[T]) Allocator[U] {
	return Bind[U](allocator.Policy())
}
