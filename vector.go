package vec

import (
	"iter"

	"github.com/pkg/errors"
)

// Vector is a generic, contiguous, growable sequence container. It owns one
// RawBuffer and keeps slots [0, Len()) live and [Len(), Cap()) as dead
// storage. The zero value is an empty vector with a heap allocator and
// trivial element lifecycles, ready to use.
//
// A Vector must not be copied by assignment; use Clone, CopyFrom, or Swap.
type Vector[T any] struct {
	alloc Allocator
	ops   Ops[T]
	buf   RawBuffer[T]
	size  int
}

// New returns an empty vector backed by the heap allocator with trivial
// element lifecycles. No storage is allocated until the first growth.
func New[T any]() *Vector[T] {
	return NewIn(HeapAllocator{}, Ops[T]{})
}

// NewIn returns an empty vector drawing storage from a and managing element
// lifetimes with ops. A nil allocator falls back to HeapAllocator.
func NewIn[T any](a Allocator, ops Ops[T]) *Vector[T] {
	if a == nil {
		a = HeapAllocator{}
	}
	return &Vector[T]{alloc: a, ops: ops}
}

// NewSize returns a vector holding n value-initialized elements, with
// capacity exactly n.
func NewSize[T any](n int) (*Vector[T], error) {
	return NewSizeIn(HeapAllocator{}, Ops[T]{}, n)
}

// NewSizeIn is NewSize with an injected allocator and element lifecycle.
// Construction is all-or-nothing: if initializing element k+1 fails, the k
// elements already constructed are destroyed and the buffer released before
// the error returns, producing no vector at all.
func NewSizeIn[T any](a Allocator, ops Ops[T], n int) (*Vector[T], error) {
	if n < 0 {
		panic("vec: negative size")
	}
	v := NewIn(a, ops)
	buf, err := NewRawBuffer[T](v.alloc, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		val, err := ops.init()
		if err != nil {
			destroyRange(ops, &buf, 0, i)
			buf.Release()
			return nil, errors.Wrapf(err, "vec: initialize element %d", i)
		}
		*buf.Slot(i) = val
	}
	v.buf.MoveFrom(&buf)
	v.size = n
	return v, nil
}

// Clone returns an independent copy of v: a buffer sized to v.Len() with
// every element copy-constructed in index order. A failed copy destroys the
// elements already constructed and releases the new buffer, producing no
// vector at all.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return cloneInto(v.allocator(), v.ops, v)
}

func cloneInto[T any](a Allocator, ops Ops[T], src *Vector[T]) (*Vector[T], error) {
	out := NewIn(a, ops)
	buf, err := NewRawBuffer[T](a, src.size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < src.size; i++ {
		val, err := ops.copy(*src.buf.Slot(i))
		if err != nil {
			destroyRange(ops, &buf, 0, i)
			buf.Release()
			return nil, errors.Wrapf(err, "vec: copy element %d", i)
		}
		*buf.Slot(i) = val
	}
	out.buf.MoveFrom(&buf)
	out.size = src.size
	return out, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots the vector's buffer holds.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// At returns the value of the element at index i. Panics unless
// 0 <= i < Len().
func (v *Vector[T]) At(i int) T {
	v.checkIndex(i)
	return *v.buf.Slot(i)
}

// Ptr returns the address of the element at index i. The address stays
// stable until the next capacity-changing operation. Panics unless
// 0 <= i < Len().
func (v *Vector[T]) Ptr(i int) *T {
	v.checkIndex(i)
	return v.buf.Slot(i)
}

// Set copy-assigns val over the live element at index i. The old value is
// destroyed only after the copy succeeds, so a failed copy changes nothing.
func (v *Vector[T]) Set(i int, val T) error {
	v.checkIndex(i)
	replacement, err := v.ops.copy(val)
	if err != nil {
		return errors.Wrapf(err, "vec: copy value for index %d", i)
	}
	slot := v.buf.Slot(i)
	v.ops.destroy(slot)
	*slot = replacement
	return nil
}

// All returns an iterator over index/value pairs from the first element to
// the last. Mutating the vector during iteration is undefined.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.buf.Slot(i)) {
				return
			}
		}
	}
}

// Swap exchanges contents with other in constant time. No element is
// constructed, destroyed, copied, or relocated. Swap doubles as the move
// primitive: swapping with a fresh vector moves v out and leaves it empty,
// and move assignment is a swap that hands the source this vector's old
// contents. Self-swap is a no-op.
func (v *Vector[T]) Swap(other *Vector[T]) {
	if v == other {
		return
	}
	v.alloc, other.alloc = other.alloc, v.alloc
	v.ops, other.ops = other.ops, v.ops
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
}

// CopyFrom copy-assigns the contents of src into v. Self-assignment is a
// no-op.
//
// When src holds more elements than v's buffer has slots, a full temporary
// copy is built and swapped in, so a failure leaves v unchanged. Otherwise
// the existing buffer is reused: the overlapping prefix is copy-assigned in
// place, a shrinking assignment destroys the excess tail, and a growing one
// copy-constructs the extras into dead slots. The reuse path never releases
// excess capacity, keeping capacity stable across assignments; a failure
// while constructing extras destroys only the extras built during this call.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.size > v.buf.Cap() {
		tmp, err := cloneInto(v.allocator(), v.ops, src)
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Destroy()
		return nil
	}
	overlap := min(v.size, src.size)
	for i := 0; i < overlap; i++ {
		val, err := v.ops.copy(*src.buf.Slot(i))
		if err != nil {
			return errors.Wrapf(err, "vec: copy element %d", i)
		}
		slot := v.buf.Slot(i)
		v.ops.destroy(slot)
		*slot = val
	}
	switch {
	case src.size < v.size:
		destroyRange(v.ops, &v.buf, src.size, v.size)
	case src.size > v.size:
		for i := v.size; i < src.size; i++ {
			val, err := v.ops.copy(*src.buf.Slot(i))
			if err != nil {
				destroyRange(v.ops, &v.buf, v.size, i)
				return errors.Wrapf(err, "vec: copy element %d", i)
			}
			*v.buf.Slot(i) = val
		}
	}
	v.size = src.size
	return nil
}

// Reserve grows the buffer to hold at least n slots. It is a no-op when n
// does not exceed the current capacity: no element is reconstructed and
// addresses stay stable. Otherwise a buffer of exactly n slots is
// allocated, every live element is transferred, the originals are destroyed
// only after the whole transfer succeeds, and the new buffer is committed
// by swap.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Cap() {
		return nil
	}
	buf, err := NewRawBuffer[T](v.allocator(), n)
	if err != nil {
		return errors.Wrap(err, "vec: grow buffer")
	}
	if err := v.transfer(&buf, 0, v.size, 0); err != nil {
		buf.Release()
		return err
	}
	destroyRange(v.ops, &v.buf, 0, v.size)
	v.buf.Swap(&buf)
	buf.Release()
	return nil
}

// Resize sets the number of live elements to n. Growing reserves capacity
// and value-initializes the added slots; if one fails, the slots added so
// far are destroyed and the size is unchanged. Shrinking destroys the
// trailing slots and keeps the capacity.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic("vec: negative size")
	}
	if n > v.size {
		if err := v.Reserve(n); err != nil {
			return err
		}
		for i := v.size; i < n; i++ {
			val, err := v.ops.init()
			if err != nil {
				destroyRange(v.ops, &v.buf, v.size, i)
				return errors.Wrapf(err, "vec: initialize element %d", i)
			}
			*v.buf.Slot(i) = val
		}
	} else {
		destroyRange(v.ops, &v.buf, n, v.size)
	}
	v.size = n
	return nil
}

// PushBack appends a copy of val and returns the address of the stored
// element.
func (v *Vector[T]) PushBack(val T) (*T, error) {
	return v.EmplaceBack(func() (T, error) { return v.ops.copy(val) })
}

// EmplaceBack constructs a new element in place at the end and returns its
// address. With spare capacity the element is built directly into the next
// dead slot; a full buffer takes the general positional path at the end
// position.
func (v *Vector[T]) EmplaceBack(build func() (T, error)) (*T, error) {
	if v.size == v.buf.Cap() {
		return v.Emplace(v.size, build)
	}
	val, err := build()
	if err != nil {
		return nil, errors.Wrap(err, "vec: construct element")
	}
	slot := v.buf.Slot(v.size)
	*slot = val
	v.size++
	return slot, nil
}

// PopBack destroys the last element and shrinks the vector by one. Popping
// an empty vector is a no-op; PopBack never fails.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		return
	}
	v.size--
	v.ops.destroy(v.buf.Slot(v.size))
}

// Insert places a copy of val before index i; i == Len() appends. Panics
// unless 0 <= i <= Len().
func (v *Vector[T]) Insert(i int, val T) error {
	_, err := v.Emplace(i, func() (T, error) { return v.ops.copy(val) })
	return err
}

// Emplace constructs a new element in place before index i and returns its
// address; i == Len() appends. Panics unless 0 <= i <= Len().
//
// The element is built before any slot is disturbed, so a failed build
// changes nothing. With spare capacity the last element relocates into the
// next dead slot, [i, Len()-1) shifts right in descending order, and the
// new element lands in the vacated slot. With a full buffer the capacity
// doubles (one slot minimum): the new element is placed at its target slot
// in a fresh buffer, the prefix and suffix transfer around it (relocating
// when the lifecycle allows, copying otherwise), and only after the whole
// transfer succeeds are the old elements destroyed and the buffer swapped.
// A failed transfer destroys everything constructed in the fresh buffer and
// leaves v untouched.
func (v *Vector[T]) Emplace(i int, build func() (T, error)) (*T, error) {
	if i < 0 || i > v.size {
		panic("vec: position out of range")
	}
	if v.size == v.buf.Cap() {
		return v.emplaceGrow(i, build)
	}
	val, err := build()
	if err != nil {
		return nil, errors.Wrap(err, "vec: construct element")
	}
	if i < v.size {
		*v.buf.Slot(v.size) = v.ops.move(v.buf.Slot(v.size - 1))
		for j := v.size - 1; j > i; j-- {
			*v.buf.Slot(j) = v.ops.move(v.buf.Slot(j - 1))
		}
		v.ops.destroy(v.buf.Slot(i))
	}
	slot := v.buf.Slot(i)
	*slot = val
	v.size++
	return slot, nil
}

func (v *Vector[T]) emplaceGrow(i int, build func() (T, error)) (*T, error) {
	newCap := 1
	if v.size > 0 {
		newCap = v.size * 2
	}
	buf, err := NewRawBuffer[T](v.allocator(), newCap)
	if err != nil {
		return nil, errors.Wrap(err, "vec: grow buffer")
	}
	val, err := build()
	if err != nil {
		buf.Release()
		return nil, errors.Wrap(err, "vec: construct element")
	}
	*buf.Slot(i) = val
	if err := v.transfer(&buf, 0, i, 0); err != nil {
		v.ops.destroy(buf.Slot(i))
		buf.Release()
		return nil, err
	}
	if err := v.transfer(&buf, i, v.size, i+1); err != nil {
		destroyRange(v.ops, &buf, 0, i+1)
		buf.Release()
		return nil, err
	}
	destroyRange(v.ops, &v.buf, 0, v.size)
	v.buf.Swap(&buf)
	buf.Release()
	v.size++
	return v.buf.Slot(i), nil
}

// transfer moves or copies live slots [lo, hi) into dst starting at dstLo.
// The relocation path cannot fail. The copy path leaves every source intact
// and, on failure, destroys the copies constructed in dst during this call
// before returning.
func (v *Vector[T]) transfer(dst *RawBuffer[T], lo, hi, dstLo int) error {
	if v.ops.relocatable() {
		for i := lo; i < hi; i++ {
			*dst.Slot(dstLo + i - lo) = v.ops.move(v.buf.Slot(i))
		}
		return nil
	}
	for i := lo; i < hi; i++ {
		val, err := v.ops.copy(*v.buf.Slot(i))
		if err != nil {
			destroyRange(v.ops, dst, dstLo, dstLo+i-lo)
			return errors.Wrapf(err, "vec: transfer element %d", i)
		}
		*dst.Slot(dstLo + i - lo) = val
	}
	return nil
}

// Erase removes the element at index i. Elements after i slide one slot
// left in ascending order; index i then refers to the element that slid
// into place, or equals Len() when the last element was removed. Panics
// unless 0 <= i < Len().
func (v *Vector[T]) Erase(i int) {
	v.checkIndex(i)
	for j := i; j < v.size-1; j++ {
		slot := v.buf.Slot(j)
		v.ops.destroy(slot)
		*slot = v.ops.move(v.buf.Slot(j + 1))
	}
	v.size--
	v.ops.destroy(v.buf.Slot(v.size))
}

// Destroy destroys all live elements, then releases the buffer. The vector
// ends up empty with zero capacity and may be reused; destroying it again
// is a no-op. Vectors with trivial lifecycles and the heap allocator may
// skip Destroy and be dropped to the collector instead.
func (v *Vector[T]) Destroy() {
	destroyRange(v.ops, &v.buf, 0, v.size)
	v.size = 0
	v.buf.Release()
}

func (v *Vector[T]) allocator() Allocator {
	if v.alloc == nil {
		return HeapAllocator{}
	}
	return v.alloc
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || i >= v.size {
		panic("vec: index out of range")
	}
}
