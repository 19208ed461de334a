package memory_test

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arena/memory"
	"github.com/vkngwrapper/arena/memutils"
)

type clonedElement struct {
	values []int
	fail   bool
}

func (e *clonedElement) Clone() (clonedElement, error) {
	if e.fail {
		return clonedElement{}, errors.New("clone failed")
	}

	values := make([]int, len(e.values))
	copy(values, e.values)
	return clonedElement{values: values}, nil
}

func TestHeapAllocate(t *testing.T) {
	heap := memory.NewHeap[int]()

	storage, err := heap.Allocate(5)
	require.NoError(t, err)
	require.Len(t, storage, 5)

	storage, err = heap.Allocate(0)
	require.NoError(t, err)
	require.Nil(t, storage)

	_, err = heap.Allocate(-3)
	require.ErrorIs(t, err, memutils.ErrInvalidSize)

	_, err = heap.Allocate(heap.MaxSize() + 1)
	require.ErrorIs(t, err, memutils.ErrOutOfMemory)

	heap.Deallocate(storage)
	require.NoError(t, heap.Release())
}

func TestHeapMaxSize(t *testing.T) {
	require.Equal(t, math.MaxInt/8, memory.NewHeap[int64]().MaxSize())
	require.Equal(t, math.MaxInt/16, memory.NewHeap[[2]int64]().MaxSize())
	require.Equal(t, math.MaxInt, memory.NewHeap[struct{}]().MaxSize())
}

func TestHeapEquality(t *testing.T) {
	heap := memory.NewHeap[int]()

	require.True(t, heap.Equal(heap))
	require.True(t, heap.Equal(memory.NewHeap[int]()))
	require.False(t, heap.Equal(memory.NewArena[int](memory.ArenaPolicy{})))
	require.Same(t, heap, heap.SelectOnCopy())
	require.Equal(t, memory.AllocatorKindHeap, heap.Policy().Kind())
}

func TestHeapConstructDestroy(t *testing.T) {
	heap := memory.NewHeap[trackedElement]()
	var destroyed []int

	storage, err := heap.Allocate(1)
	require.NoError(t, err)

	err = heap.Construct(&storage[0], func(e *trackedElement) error {
		e.id = 3
		e.destroyed = &destroyed
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, storage[0].id)

	heap.Destroy(&storage[0])
	require.Equal(t, []int{3}, destroyed)
	require.Equal(t, trackedElement{}, storage[0])

	err = heap.Construct(nil, nil)
	require.Error(t, err)
}

func TestCopyOf(t *testing.T) {
	var plain int
	require.NoError(t, memory.CopyOf(5)(&plain))
	require.Equal(t, 5, plain)

	original := clonedElement{values: []int{1, 2, 3}}
	var copied clonedElement
	require.NoError(t, memory.CopyOf(original)(&copied))
	require.Equal(t, original.values, copied.values)

	copied.values[0] = 100
	require.Equal(t, 1, original.values[0])

	failing := clonedElement{values: []int{1}, fail: true}
	heap := memory.NewHeap[clonedElement]()
	storage, err := heap.Allocate(1)
	require.NoError(t, err)

	err = heap.Construct(&storage[0], memory.CopyOf(failing))
	require.Error(t, err)
	require.True(t, errors.Is(err, memutils.ErrConstruction))
	require.Nil(t, storage[0].values)
}

func TestBind(t *testing.T) {
	require.IsType(t, &memory.Heap[string]{}, memory.Bind[string](nil))
	require.IsType(t, &memory.Heap[string]{}, memory.Bind[string](memory.HeapPolicy{}))

	bound := memory.Bind[string](memory.ArenaPolicy{ChunkSize: 7})
	arena, isArena := bound.(*memory.Arena[string])
	require.True(t, isArena)
	require.Equal(t, 7, arena.ChunkSize())

	rebound := memory.Rebind[float64, int](memory.NewHeap[int]())
	require.IsType(t, &memory.Heap[float64]{}, rebound)
}

func TestAllocatorKindString(t *testing.T) {
	require.Equal(t, "AllocatorKindHeap", memory.AllocatorKindHeap.String())
	require.Equal(t, "AllocatorKindHeap", memory.HeapPolicy{}.Kind().String())
	require.Equal(t, "AllocatorKindArena", memory.ArenaPolicy{}.Kind().String())
}
