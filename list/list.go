package list

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arena/memory"
	"github.com/vkngwrapper/arena/memutils"
)

// Node is the unit of storage of a List: one element and the node that follows it. Nodes are
// allocated and constructed through the List's allocator and are owned by the List that created them.
type Node[T any] struct {
	value T
	next  *Node[T]
}

// Destroy runs the element's memory.Destroyer contract, if it has one. Allocators call it when the
// node is destroyed, either by the list or at allocator teardown.
func (n *Node[T]) Destroy() {
	destroyer, isDestroyer := any(&n.value).(memory.Destroyer)
	if isDestroyer {
		destroyer.Destroy()
	}
}

// List is a singly-linked sequence of elements whose nodes are obtained from an injected allocator.
//
// The zero value is not usable; create lists with New, NewWithAllocator, NewWithNodeAllocator or
// NewFromValues. A List is not safe for concurrent use.
type List[T any] struct {
	head      *Node[T]
	tail      *Node[T]
	count     int
	allocator memory.Allocator[Node[T]]
}

// New creates an empty list whose nodes are allocated from the Go heap
func New[T any]() *List[T] {
	return NewWithNodeAllocator[T](memory.NewHeap[Node[T]]())
}

// NewWithAllocator creates an empty list whose nodes are allocated by a fresh allocator rebound from
// allocator. The provided allocator is only used for its policy: the list never allocates from it
// directly. A nil allocator selects the Go heap.
func NewWithAllocator[T any](allocator memory.Allocator[T]) *List[T] {
	if allocator == nil {
		return New[T]()
	}

	return NewWithNodeAllocator[T](memory.Rebind[Node[T]](allocator))
}

// NewWithNodeAllocator creates an empty list that allocates its nodes directly from allocator, which
// must not be nil
func NewWithNodeAllocator[T any](allocator memory.Allocator[Node[T]]) *List[T] {
	if allocator == nil {
		panic("attempted to create a list with a nil node allocator")
	}

	return &List[T]{
		allocator: allocator,
	}
}

// NewFromValues creates a list as NewWithAllocator does and then appends each of values in order. If
// an element fails to copy, the list built so far is destroyed and the error is returned.
func NewFromValues[T any](allocator memory.Allocator[T], values ...T) (*List[T], error) {
	l := NewWithAllocator[T](allocator)

	for _, value := range values {
		err := l.PushBack(value)
		if err != nil {
			destroyErr := l.Destroy()
			return nil, errors.CombineErrors(err, destroyErr)
		}
	}

	return l, nil
}

// Allocator returns the allocator this list uses for its nodes
func (l *List[T]) Allocator() memory.Allocator[Node[T]] {
	return l.allocator
}

// Len returns the number of elements in the list
func (l *List[T]) Len() int { return l.count }

// Empty returns true if the list has no elements
func (l *List[T]) Empty() bool { return l.count == 0 }

// PushBack appends a copy of value to the end of the list. If value implements memory.Cloner, the
// list receives the result of Clone.
//
// If the copy fails, the node that was allocated for it is handed back to the allocator's Deallocate
// and the error is returned; the list is unchanged.
func (l *List[T]) PushBack(value T) error {
	return l.EmplaceBack(memory.CopyOf(value))
}

// EmplaceBack appends a new element to the end of the list, initialized in place by init. A nil init
// appends the zero value.
//
// If init fails, the node that was allocated for it is handed back to the allocator's Deallocate
// and the error is returned; the list is unchanged.
func (l *List[T]) EmplaceBack(init func(*T) error) error {
	storage, err := l.allocator.Allocate(1)
	if err != nil {
		return err
	}
	if len(storage) != 1 {
		return errors.Newf("node allocator returned %d nodes when asked for 1", len(storage))
	}

	node := &storage[0]
	err = l.allocator.Construct(node, func(n *Node[T]) error {
		n.next = nil
		if init == nil {
			return nil
		}
		return init(&n.value)
	})
	if err != nil {
		l.allocator.Deallocate(storage)
		return err
	}

	l.pushNode(node)
	return nil
}

func (l *List[T]) pushNode(node *Node[T]) {
	if l.count == 0 {
		l.head = node
		l.tail = node
		l.count = 1
	} else {
		l.tail.next = node
		l.tail = node
		l.count++
	}
}

// Clear destroys and deallocates every node from head to tail and leaves the list empty. Every
// iterator into the list is invalidated.
func (l *List[T]) Clear() {
	node := l.head
	for node != nil {
		next := node.next
		l.allocator.Destroy(node)
		l.allocator.Deallocate(unsafe.Slice(node, 1))
		node = next
	}

	l.head = nil
	l.tail = nil
	l.count = 0
}

// Destroy clears the list and releases its allocator. The list must not be used afterward.
func (l *List[T]) Destroy() error {
	l.Clear()
	return l.allocator.Release()
}

// Clone creates a new list holding a copy of every element of this list, in order. The new list's
// allocator is chosen by this list allocator's SelectOnCopy.
func (l *List[T]) Clone() (*List[T], error) {
	clone := NewWithNodeAllocator[T](l.allocator.SelectOnCopy())

	err := clone.appendCopies(l)
	if err != nil {
		destroyErr := clone.Destroy()
		return nil, errors.CombineErrors(err, destroyErr)
	}

	return clone, nil
}

// CopyFrom replaces the contents of this list with a copy of every element of src, in order, and adopts
// the allocator chosen by src's allocator's SelectOnCopy. This list's previous allocator is released
// unless it is equal to the adopted one. Copying a list onto itself does nothing.
//
// If an element fails to copy, the list keeps the elements copied before it and the error is
// returned.
func (l *List[T]) CopyFrom(src *List[T]) error {
	if l == src {
		return nil
	}

	l.Clear()

	allocator := src.allocator.SelectOnCopy()
	err := l.replaceAllocator(allocator)
	if err != nil {
		return err
	}

	return l.appendCopies(src)
}

func (l *List[T]) appendCopies(src *List[T]) error {
	for node := src.head; node != nil; node = node.next {
		err := l.PushBack(node.value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Move creates a new list that takes ownership of every node and the allocator of this list. This list
// is left empty, with a fresh allocator of the same policy, and remains usable.
func (l *List[T]) Move() *List[T] {
	moved := &List[T]{
		head:      l.head,
		tail:      l.tail,
		count:     l.count,
		allocator: l.allocator,
	}

	l.head = nil
	l.tail = nil
	l.count = 0
	l.allocator = memory.Bind[Node[T]](moved.allocator.Policy())

	return moved
}

// MoveFrom clears this list, releases its allocator, and takes ownership of every node and the
// allocator of src. src is left empty, with a fresh allocator of the same policy. Moving a list onto
// itself does nothing.
func (l *List[T]) MoveFrom(src *List[T]) error {
	if l == src {
		return nil
	}

	l.Clear()

	moved := src.Move()
	err := l.replaceAllocator(moved.allocator)

	l.head = moved.head
	l.tail = moved.tail
	l.count = moved.count

	return err
}

func (l *List[T]) replaceAllocator(allocator memory.Allocator[Node[T]]) error {
	previous := l.allocator
	l.allocator = allocator

	if previous == nil || previous.Equal(allocator) {
		return nil
	}

	return previous.Release()
}

// Range calls fn with a pointer to each element, from head to tail, until fn returns false
func (l *List[T]) Range(fn func(value *T) bool) {
	for node := l.head; node != nil; node = node.next {
		if !fn(&node.value) {
			return
		}
	}
}

// Values returns a copy of every element, from head to tail
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.count)
	for node := l.head; node != nil; node = node.next {
		values = append(values, node.value)
	}

	return values
}

// Validate checks the structural invariants of the list: the declared count matches the chain, the
// chain ends at the tail, and an empty list has no head or tail
func (l *List[T]) Validate() error {
	if l.count == 0 {
		if l.head != nil || l.tail != nil {
			return errors.New("the list is empty, but has a head or tail node")
		}
		return nil
	}

	if l.head == nil || l.tail == nil {
		return errors.Newf("the list has %d elements, but no head or tail node", l.count)
	}
	if l.tail.next != nil {
		return errors.New("the tail node of the list has a successor")
	}

	actualCount := 0
	var last *Node[T]
	for node := l.head; node != nil; node = node.next {
		actualCount++
		last = node

		if actualCount > l.count {
			return errors.Newf("the chain of nodes is longer than the listed number of elements (%d)", l.count)
		}
	}

	if actualCount != l.count {
		return errors.Errorf("the listed number of elements in the list (%d) does not match the actual number of nodes (%d)", l.count, actualCount)
	}
	if last != l.tail {
		return errors.New("the chain of nodes does not end at the tail node")
	}

	return nil
}

type statisticsReporter interface {
	AddStatistics(stats *memutils.Statistics)
	AddDetailedStatistics(stats *memutils.DetailedStatistics)
}

// AddStatistics sums the statistics of the list's allocator into stats, if the allocator keeps any
func (l *List[T]) AddStatistics(stats *memutils.Statistics) {
	reporter, isReporter := l.allocator.(statisticsReporter)
	if isReporter {
		reporter.AddStatistics(stats)
	}
}

// AddDetailedStatistics sums the detailed statistics of the list's allocator into stats, if the
// allocator keeps any
func (l *List[T]) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	reporter, isReporter := l.allocator.(statisticsReporter)
	if isReporter {
		reporter.AddDetailedStatistics(stats)
	}
}
