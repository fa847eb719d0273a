package vec

// Ops describes how a vector manages its element type's lifetime. The zero
// value treats elements as trivial: value construction yields the zero
// value, copies are plain assignments, relocation is assignment plus
// clearing the source, and destruction clears the slot. None of those can
// fail, so a zero-Ops vector only ever reports allocation errors.
//
// Hooks that are set must honor the stated contracts. Move and Destroy in
// particular must not fail, and both may be handed a value that was already
// relocated out of.
type Ops[T any] struct {
	// Init produces a value-initialized element for sized construction and
	// growth via Resize. nil means the zero value.
	Init func() (T, error)

	// Copy produces an independent copy of src. nil means plain assignment.
	Copy func(src T) (T, error)

	// Move relocates the value out of src, leaving src empty but valid.
	// Move must not fail. nil means plain assignment followed by clearing
	// the source.
	Move func(src *T) T

	// Destroy ends an element's lifetime. Destroy must not fail. nil means
	// clearing the slot so the collector can reclaim referents.
	Destroy func(slot *T)
}

// relocatable reports whether buffer transfers may relocate elements rather
// than copy them: either the type declares a non-failing Move, or it has no
// Copy hook and plain assignment (which cannot fail) relocates it. When
// false, transfers copy so a mid-transfer failure leaves the source intact.
func (o Ops[T]) relocatable() bool {
	return o.Move != nil || o.Copy == nil
}

func (o Ops[T]) init() (T, error) {
	if o.Init != nil {
		return o.Init()
	}
	var zero T
	return zero, nil
}

func (o Ops[T]) copy(src T) (T, error) {
	if o.Copy != nil {
		return o.Copy(src)
	}
	return src, nil
}

func (o Ops[T]) move(src *T) T {
	if o.Move != nil {
		return o.Move(src)
	}
	v := *src
	var zero T
	*src = zero
	return v
}

func (o Ops[T]) destroy(slot *T) {
	if o.Destroy != nil {
		o.Destroy(slot)
		return
	}
	var zero T
	*slot = zero
}

// destroyRange ends the lifetime of slots [lo, hi) in buf.
func destroyRange[T any](ops Ops[T], buf *RawBuffer[T], lo, hi int) {
	for i := lo; i < hi; i++ {
		ops.destroy(buf.Slot(i))
	}
}
