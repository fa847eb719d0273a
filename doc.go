// Package vec implements a generic, contiguous, growable sequence container
// built on raw slot storage.
//
// # Overview
//
// Vector reproduces the semantics of a manually managed dynamic array: it
// owns a single block of storage sized for a fixed number of element slots,
// keeps the first Len() slots live and the rest as dead storage, and
// performs every construction, copy, relocation, and destruction step
// explicitly. This is useful for:
//
//   - Element types with non-trivial or failure-prone lifecycles
//   - Code that needs deterministic control over when storage grows
//   - Testing allocation-failure and rollback behavior with injected doubles
//   - Address-stable references between capacity changes
//
// # Basic Usage
//
//	v := vec.New[int]()
//	defer v.Destroy() // tear down elements and storage
//
//	v.PushBack(1)
//	v.PushBack(2)
//	v.Insert(1, 9) // [1 9 2]
//	v.Erase(0)     // [9 2]
//
//	for i, x := range v.All() {
//		fmt.Println(i, x)
//	}
//
// # Storage Model
//
// Storage comes from an Allocator, an injected capability with exactly two
// operations: obtain a block of N bytes and release it. The default
// HeapAllocator draws from the Go heap. A RawBuffer owns one such block
// sized for a fixed slot count and never touches element lifetimes; slot
// occupancy is tracked entirely by the Vector that owns the buffer. A
// buffer belongs to exactly one owner at a time, and ownership changes only
// through Swap or MoveFrom.
//
// # Element Lifecycles
//
// Ops describes how elements are value-initialized, copied, relocated, and
// destroyed. The zero Ops treats elements as trivial (zero value, plain
// assignment, clear on destroy) and nothing can fail. Custom Init and Copy
// hooks may fail; every operation that runs them either rolls partial work
// back or, for buffer transfers, picks relocation up front when the type
// declares a non-failing Move.
//
// # Failure Model
//
//   - Allocation failure: returned by the triggering operation; the vector
//     is left exactly as it was (construction entry points produce no
//     object at all).
//   - Element-operation failure: partial work is unwound before the error
//     returns wherever rollback is possible; reallocating paths leave the
//     original buffer untouched.
//   - Out-of-range indexes and positions are programmer errors and panic.
//
// # Thread Safety
//
// Vector is not safe for concurrent mutation. It is a building block, not a
// service; callers that share one across goroutines must synchronize
// externally.
//
// # Important Notes
//
//   - Element storage is viewed through unsafe typed slices over allocator
//     blocks. The buffer keeps its block reachable, but pointers stored
//     inside elements must be kept reachable by the caller when using a
//     custom allocator whose blocks the collector does not scan.
//   - Addresses returned by Ptr, PushBack, EmplaceBack, and Emplace stay
//     stable until the next capacity-changing operation.
//   - Copy assignment never releases excess capacity; capacity is stable
//     across assignments of varying size.
package vec
