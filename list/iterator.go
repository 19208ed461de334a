package list

// Iterator is a forward cursor over the elements of a List that allows elements to be modified in
// place. The zero Iterator is equal to End.
//
// Iterators are invalidated by Clear, Destroy, and by moving the list's nodes elsewhere. Appending to
// the list does not invalidate iterators to existing elements, but an iterator that was equal to End
// before the append continues to point past the last element rather than at the new one.
type Iterator[T any] struct {
	current *Node[T]
}

// Begin returns an iterator to the first element of the list, or End if the list is empty
func (l *List[T]) Begin() Iterator[T] {
	return Iterator[T]{current: l.head}
}

// End returns the iterator that follows the last element of the list
func (l *List[T]) End() Iterator[T] {
	return Iterator[T]{}
}

// Valid returns true if the iterator points at an element rather than End
func (it Iterator[T]) Valid() bool {
	return it.current != nil
}

// Value returns a pointer to the element at the iterator. It panics if the iterator is End.
func (it Iterator[T]) Value() *T {
	if it.current == nil {
		panic("attempted to dereference the end iterator of a list")
	}

	return &it.current.value
}

// Next advances the iterator to the following element. It panics if the iterator is End.
func (it *Iterator[T]) Next() {
	if it.current == nil {
		panic("attempted to advance the end iterator of a list")
	}

	it.current = it.current.next
}

// Equal returns true if both iterators point at the same element, or are both End
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.current == other.current
}

// Const converts the iterator to a read-only ConstIterator at the same position
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{current: it.current}
}

// ConstIterator is a forward cursor over the elements of a List that only permits reading them. It
// shares the invalidation rules of Iterator. A ConstIterator can be obtained from an Iterator, but not
// the reverse.
type ConstIterator[T any] struct {
	current *Node[T]
}

// CBegin returns a read-only iterator to the first element of the list, or CEnd if the list is empty
func (l *List[T]) CBegin() ConstIterator[T] {
	return ConstIterator[T]{current: l.head}
}

// CEnd returns the read-only iterator that follows the last element of the list
func (l *List[T]) CEnd() ConstIterator[T] {
	return ConstIterator[T]{}
}

func (it ConstIterator[T]) Valid() bool {
	return it.current != nil
}

// Value returns a copy of the element at the iterator. It panics if the iterator is CEnd.
func (it ConstIterator[T]) Value() T {
	if it.current == nil {
		panic("attempted to dereference the end iterator of a list")
	}

	return it.current.value
}

func (it *ConstIterator[T]) Next() {
	if it.current == nil {
		panic("attempted to advance the end iterator of a list")
	}

	it.current = it.current.next
}

func (it ConstIterator[T]) Equal(other ConstIterator[T]) bool {
	return it.current == other.current
}
