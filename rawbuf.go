package vec

// RawBuffer owns a single block of raw storage sized for a fixed number of
// element slots. It never constructs or destroys elements: no slot is
// guaranteed to hold a live value, and occupancy is tracked entirely by the
// buffer's owner. The zero value is a null buffer of capacity 0.
//
// A RawBuffer must not be copied. Duplicating a raw block without per-slot
// occupancy knowledge is unsafe at this layer; ownership changes only
// through Swap or MoveFrom, and element-aware copying belongs to Vector.
type RawBuffer[T any] struct {
	alloc Allocator
	block []byte
	slots []T
}

// NewRawBuffer allocates storage for capacity slots of T from a. Capacity 0
// yields a null buffer without consulting the allocator. On allocation
// failure no partial state is left behind.
func NewRawBuffer[T any](a Allocator, capacity int) (RawBuffer[T], error) {
	if capacity == 0 {
		return RawBuffer[T]{alloc: a}, nil
	}
	slots, block, err := allocSlots[T](a, capacity)
	if err != nil {
		return RawBuffer[T]{}, err
	}
	return RawBuffer[T]{alloc: a, block: block, slots: slots}, nil
}

// Release returns the block to its allocator and leaves the buffer null.
// Element lifetimes are untouched: the owner must destroy live elements
// beforehand. Releasing a null buffer is a no-op, so Release is idempotent.
func (b *RawBuffer[T]) Release() {
	if b.block != nil && b.alloc != nil {
		b.alloc.Free(b.block)
	}
	b.block = nil
	b.slots = nil
}

// Cap returns the number of slots the block holds.
func (b *RawBuffer[T]) Cap() int {
	return len(b.slots)
}

// Swap exchanges block ownership and capacity with other in constant time.
// This is the atomic commit primitive for buffer replacement.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	b.alloc, other.alloc = other.alloc, b.alloc
	b.block, other.block = other.block, b.block
	b.slots, other.slots = other.slots, b.slots
}

// MoveFrom releases b's own block, then adopts other's block and capacity,
// leaving other null. Moving a buffer into itself is a no-op.
func (b *RawBuffer[T]) MoveFrom(other *RawBuffer[T]) {
	if b == other {
		return
	}
	b.Release()
	b.Swap(other)
}

// Slot returns the address of slot i. The slot is not guaranteed to hold a
// live value. Panics unless 0 <= i < Cap().
func (b *RawBuffer[T]) Slot(i int) *T {
	if i < 0 || i >= len(b.slots) {
		panic("vec: slot index out of range")
	}
	return &b.slots[i]
}

// Slice returns a view of slots [lo, hi). Cap() is a valid one-past-end
// offset. Panics unless 0 <= lo <= hi <= Cap().
func (b *RawBuffer[T]) Slice(lo, hi int) []T {
	if lo < 0 || hi < lo || hi > len(b.slots) {
		panic("vec: slot range out of range")
	}
	return b.slots[lo:hi:hi]
}
