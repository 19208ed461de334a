package memory

import (
	"io"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arena/memutils"
	"github.com/vkngwrapper/arena/memutils/metadata"
	"golang.org/x/exp/slog"
)

// DefaultChunkSize is the number of elements in each chunk of an Arena whose ArenaPolicy does not
// specify a ChunkSize
const DefaultChunkSize int = 10

type arenaChunk[T any] struct {
	id       int
	data     []T
	metadata *metadata.ChunkMetadata
}

// Arena is a pool allocator that hands out elements from a growing, insertion-ordered sequence of
// fixed-capacity chunks.
//
// Allocate takes its storage from the front of the unclaimed space of the first chunk, in creation
// order, that has room for the whole request. When no chunk has room, a new chunk of
// max(ChunkSize, n) elements is created. Claimed space is never returned: Deallocate is a no-op, and
// every element is reclaimed together when the arena is released. Calling Deallocate on a slice that
// is still in use, or has already been deallocated, is always safe.
//
// The arena remembers which of its slots currently hold a constructed element, so Release destroys
// every live element exactly once. Zero-size element types are not tracked.
//
// Two Arena values are equal only if they are the same arena.
type Arena[T any] struct {
	policy   ArenaPolicy
	logger   *slog.Logger
	elemSize int

	chunks      []*arenaChunk[T]
	nextChunkId int
	chunkBytes  int
	released    bool
}

var _ Allocator[int] = &Arena[int]{}

// NewArena creates an empty Arena for elements of type T. No chunks are created until the first
// allocation.
func NewArena[T any](policy ArenaPolicy) *Arena[T] {
	if policy.ChunkSize <= 0 {
		policy.ChunkSize = DefaultChunkSize
	}
	if policy.MaxBytes < 0 {
		policy.MaxBytes = 0
	}

	logger := policy.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	var zero T
	return &Arena[T]{
		policy:   policy,
		logger:   logger,
		elemSize: int(unsafe.Sizeof(zero)),
	}
}

// ChunkSize returns the minimum number of elements in each new chunk
func (a *Arena[T]) ChunkSize() int { return a.policy.ChunkSize }

// ChunkCount returns the number of chunks currently held by the arena
func (a *Arena[T]) ChunkCount() int { return len(a.chunks) }

// IsReleased returns true if Release has been called on the arena
func (a *Arena[T]) IsReleased() bool { return a.released }

func (a *Arena[T]) Allocate(n int) ([]T, error) {
	err := memutils.CheckCount(n, a.elemSize)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	if a.released {
		return nil, errors.Wrapf(memutils.ErrAllocatorReleased, "attempted to allocate %d elements", n)
	}

	for _, chunk := range a.chunks {
		if !chunk.metadata.CanClaim(n) {
			continue
		}

		return a.claim(chunk, n)
	}

	chunk, err := a.createChunk(n)
	if err != nil {
		return nil, err
	}

	return a.claim(chunk, n)
}

func (a *Arena[T]) claim(chunk *arenaChunk[T], n int) ([]T, error) {
	offset, err := chunk.metadata.Claim(n)
	if err != nil {
		return nil, errors.Wrapf(err, "chunk %d", chunk.id)
	}
	memutils.DebugValidate(chunk.metadata)

	return chunk.data[offset : offset+n : offset+n], nil
}

func (a *Arena[T]) createChunk(minCapacity int) (*arenaChunk[T], error) {
	capacity := a.policy.ChunkSize
	if minCapacity > capacity {
		capacity = minCapacity
	}

	err := memutils.CheckCount(capacity, a.elemSize)
	if err != nil {
		return nil, err
	}

	byteSize, ok := memutils.CheckedMul(capacity, a.elemSize)
	if !ok {
		return nil, errors.Wrapf(memutils.ErrOutOfMemory, "a chunk of %d elements of size %d cannot be addressed", capacity, a.elemSize)
	}

	if a.policy.MaxBytes > 0 && byteSize > a.policy.MaxBytes-a.chunkBytes {
		return nil, errors.Wrapf(memutils.ErrOutOfMemory,
			"a chunk of %d bytes would exceed the arena limit of %d bytes, with %d bytes already in use",
			byteSize, a.policy.MaxBytes, a.chunkBytes)
	}

	data, err := makeStorage[T](capacity)
	if err != nil {
		return nil, err
	}

	chunk := &arenaChunk[T]{
		id:       a.nextChunkId,
		data:     data,
		metadata: metadata.NewChunkMetadata(a.elemSize),
	}
	chunk.metadata.Init(capacity)
	a.nextChunkId++

	a.chunks = append(a.chunks, chunk)
	a.chunkBytes += byteSize

	a.logger.Debug("Arena::createChunk",
		slog.Int("ChunkId", chunk.id),
		slog.Int("Capacity", capacity),
		slog.Int("Bytes", byteSize),
		slog.Int("ChunkCount", len(a.chunks)),
	)

	return chunk, nil
}

// makeStorage obtains zeroed storage for capacity elements, converting the runtime's refusal to
// create a slice that large into memutils.ErrOutOfMemory
func makeStorage[T any](capacity int) (data []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = errors.Wrapf(memutils.ErrOutOfMemory, "failed to obtain storage for %d elements: %v", capacity, r)
		}
	}()

	return make([]T, capacity), nil
}

// Deallocate is a no-op. Claimed space is reclaimed only when the arena is released.
func (a *Arena[T]) Deallocate(p []T) {}

func (a *Arena[T]) Construct(p *T, init func(*T) error) error {
	chunk, slot := a.locate(p)
	if chunk != nil && slot >= chunk.metadata.Used() {
		return errors.Newf("attempted to construct an element in slot %d of chunk %d, which has only %d allocated elements",
			slot, chunk.id, chunk.metadata.Used())
	}
	if chunk != nil && chunk.metadata.IsLive(slot) {
		return errors.Newf("attempted to construct an element in slot %d of chunk %d, which already holds a live element",
			slot, chunk.id)
	}

	err := constructInPlace(p, init)
	if err != nil {
		return err
	}

	if chunk != nil {
		err = chunk.metadata.MarkLive(slot)
		if err != nil {
			return errors.Wrapf(err, "chunk %d", chunk.id)
		}
		memutils.DebugValidate(chunk.metadata)
	}

	return nil
}

func (a *Arena[T]) Destroy(p *T) {
	destroyInPlace(p)

	chunk, slot := a.locate(p)
	if chunk != nil {
		chunk.metadata.MarkDead(slot)
	}
}

// locate finds the chunk and slot index that p points into, or nil if p is not storage from this arena
func (a *Arena[T]) locate(p *T) (*arenaChunk[T], int) {
	if p == nil || a.elemSize == 0 {
		return nil, -1
	}

	addr := uintptr(unsafe.Pointer(p))
	elemSize := uintptr(a.elemSize)

	for _, chunk := range a.chunks {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(chunk.data)))
		if addr < base {
			continue
		}

		offset := addr - base
		if offset >= uintptr(len(chunk.data))*elemSize {
			continue
		}

		return chunk, int(offset / elemSize)
	}

	return nil, -1
}

func (a *Arena[T]) MaxSize() int {
	return memutils.MaxElements(a.elemSize)
}

// Equal returns true only if other is this arena
func (a *Arena[T]) Equal(other Allocator[T]) bool {
	otherArena, isArena := other.(*Arena[T])
	return isArena && otherArena == a
}

func (a *Arena[T]) Policy() Policy {
	return a.policy
}

// SelectOnCopy returns a new, empty arena with the same policy. Chunk storage always has exactly one
// owner.
func (a *Arena[T]) SelectOnCopy() Allocator[T] {
	return NewArena[T](a.policy)
}

// Release destroys every element that is still live in any chunk, in chunk creation order and then slot
// order, and drops all chunks. The arena cannot allocate afterward. Calling Release more than once is
// harmless.
func (a *Arena[T]) Release() error {
	if a.released {
		return nil
	}

	destroyed := 0
	for _, chunk := range a.chunks {
		err := chunk.metadata.VisitLiveSlots(func(slot int) error {
			destroyInPlace(&chunk.data[slot])
			destroyed++
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "failed to destroy live elements of chunk %d", chunk.id)
		}

		chunk.metadata.Clear()
		chunk.data = nil
	}

	a.logger.Debug("Arena::Release",
		slog.Int("ChunkCount", len(a.chunks)),
		slog.Int("Bytes", a.chunkBytes),
		slog.Int("DestroyedElements", destroyed),
	)

	a.chunks = nil
	a.chunkBytes = 0
	a.released = true
	return nil
}

// Validate performs internal consistency checks on every chunk of the arena
func (a *Arena[T]) Validate() error {
	byteSize := 0
	for index, chunk := range a.chunks {
		if chunk == nil {
			return errors.Newf("unexpected nil chunk at index %d", index)
		}

		if len(chunk.data) != chunk.metadata.Capacity() {
			return errors.Newf("chunk %d holds %d elements, but its metadata has a capacity of %d",
				chunk.id, len(chunk.data), chunk.metadata.Capacity())
		}

		if chunk.metadata.Capacity() < a.policy.ChunkSize {
			return errors.Newf("chunk %d has a capacity of %d, which is less than the chunk size %d",
				chunk.id, chunk.metadata.Capacity(), a.policy.ChunkSize)
		}

		err := chunk.metadata.Validate()
		if err != nil {
			return errors.Wrapf(err, "chunk %d", chunk.id)
		}

		byteSize += chunk.metadata.Capacity() * a.elemSize
	}

	if byteSize != a.chunkBytes {
		return errors.Newf("the arena's chunks hold %d bytes, but the arena recorded %d bytes", byteSize, a.chunkBytes)
	}

	return nil
}

// VisitChunks calls the provided callback once for each chunk, in creation order, with the chunk's
// capacity and used element counts. Iteration stops at the first error, which is returned.
func (a *Arena[T]) VisitChunks(visit func(index, capacity, used int) error) error {
	for index, chunk := range a.chunks {
		err := visit(index, chunk.metadata.Capacity(), chunk.metadata.Used())
		if err != nil {
			return err
		}
	}

	return nil
}

// AddStatistics sums the statistics of every chunk in the arena into stats
func (a *Arena[T]) AddStatistics(stats *memutils.Statistics) {
	for _, chunk := range a.chunks {
		chunk.metadata.AddStatistics(stats)
	}
}

// AddDetailedStatistics sums the detailed statistics of every chunk in the arena into stats
func (a *Arena[T]) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	for _, chunk := range a.chunks {
		chunk.metadata.AddDetailedStatistics(stats)
	}
}
