package vec

import "unsafe"

// Metrics is a snapshot of a vector's storage usage.
type Metrics struct {
	Len           int     // live elements
	Cap           int     // allocated slots
	ElemSize      int     // bytes per slot
	BytesLive     int     // bytes backing live elements
	BytesReserved int     // bytes backing the whole block
	Utilization   float64 // Len over Cap (0.0-1.0), 0 when no slots exist
}

// Metrics returns a snapshot of v's storage usage.
func (v *Vector[T]) Metrics() Metrics {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	m := Metrics{
		Len:           v.size,
		Cap:           v.buf.Cap(),
		ElemSize:      elem,
		BytesLive:     v.size * elem,
		BytesReserved: v.buf.Cap() * elem,
	}
	if m.Cap > 0 {
		m.Utilization = float64(m.Len) / float64(m.Cap)
	}
	return m
}

// CountingAllocator wraps another Allocator and counts the traffic through
// it. Useful for observing when a vector reallocates. A nil Inner counts
// over HeapAllocator. Not goroutine-safe.
type CountingAllocator struct {
	Inner Allocator

	Allocs         int // successful Alloc calls
	Frees          int // Free calls
	BytesAllocated int // total bytes handed out
	BytesInUse     int // bytes handed out and not yet freed
}

// Alloc obtains a block from the wrapped allocator and records it. Failed
// allocations are not counted.
func (c *CountingAllocator) Alloc(size int) ([]byte, error) {
	block, err := c.inner().Alloc(size)
	if err != nil {
		return nil, err
	}
	c.Allocs++
	c.BytesAllocated += len(block)
	c.BytesInUse += len(block)
	return block, nil
}

// Free releases a block through the wrapped allocator and records it.
func (c *CountingAllocator) Free(block []byte) {
	c.inner().Free(block)
	c.Frees++
	c.BytesInUse -= len(block)
}

func (c *CountingAllocator) inner() Allocator {
	if c.Inner == nil {
		return HeapAllocator{}
	}
	return c.Inner
}
