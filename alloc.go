package vec

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Allocator grants raw storage. It is an injected capability with exactly
// two operations: obtain a block of size bytes and release a block obtained
// earlier. Implementations report failure through Alloc's error; they never
// retry. Free must accept every block returned by Alloc exactly once and
// must tolerate nil.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(block []byte)
}

// HeapAllocator draws blocks from the Go heap. Free is a no-op; the
// collector reclaims blocks once unreferenced.
type HeapAllocator struct{}

// Alloc returns a zeroed block of exactly size bytes.
func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Errorf("vec: negative allocation size %d", size)
	}
	// Sub-word blocks come from the tiny allocator with weaker alignment;
	// round the backing array up so any element type fits.
	const word = int(unsafe.Sizeof(uintptr(0)))
	if size < word {
		return make([]byte, size, word), nil
	}
	return make([]byte, size), nil
}

// Free is a no-op for heap blocks.
func (HeapAllocator) Free(block []byte) {}

// allocSlots obtains a block sized for n slots of T from a and returns the
// typed view over it together with the raw block for a later Free. Zero n
// or a zero-size T needs no bytes, so the allocator is not consulted.
func allocSlots[T any](a Allocator, n int) ([]T, []byte, error) {
	if n < 0 {
		panic("vec: negative slot count")
	}
	if n == 0 {
		return nil, nil, nil
	}
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem == 0 {
		return make([]T, n), nil, nil
	}
	if n > math.MaxInt/elem {
		return nil, nil, errors.Errorf("vec: %d slots of %d bytes overflow block size", n, elem)
	}
	block, err := a.Alloc(elem * n)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "vec: allocate %d slots", n)
	}
	if len(block) < elem*n {
		panic("vec: allocator returned short block")
	}
	slots := unsafe.Slice((*T)(unsafe.Pointer(&block[0])), n)
	return slots, block, nil
}
