package vec

import (
	"math"
	"testing"
	"unsafe"
)

func TestHeapAllocator(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
		wantErr bool
	}{
		{"zero bytes", 0, 0, false},
		{"sub-word block", 3, 3, false},
		{"word block", 8, 8, false},
		{"large block", 1 << 20, 1 << 20, false},
		{"negative size", -1, 0, true},
	}

	var a HeapAllocator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := a.Alloc(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Alloc(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(block) != tt.wantLen {
				t.Errorf("Alloc(%d) length = %d, want %d", tt.size, len(block), tt.wantLen)
			}
			a.Free(block)
		})
	}
}

func TestAllocSlotsTypedView(t *testing.T) {
	slots, block, err := allocSlots[int64](HeapAllocator{}, 4)
	if err != nil {
		t.Fatalf("allocSlots: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("slot count = %d, want 4", len(slots))
	}
	if len(block) != 4*int(unsafe.Sizeof(int64(0))) {
		t.Errorf("block length = %d, want %d", len(block), 4*8)
	}

	// The typed view and the raw block alias the same storage.
	slots[0] = 0x0102030405060708
	sum := 0
	for _, b := range block[:8] {
		sum += int(b)
	}
	if sum != 1+2+3+4+5+6+7+8 {
		t.Errorf("typed write not visible through raw block, byte sum = %d", sum)
	}
}

func TestAllocSlotsZeroCount(t *testing.T) {
	slots, block, err := allocSlots[int](HeapAllocator{}, 0)
	if err != nil {
		t.Fatalf("allocSlots: %v", err)
	}
	if slots != nil || block != nil {
		t.Errorf("zero slots yielded storage: slots=%v block=%v", slots, block)
	}
}

func TestAllocSlotsZeroSizeType(t *testing.T) {
	slots, block, err := allocSlots[struct{}](HeapAllocator{}, 16)
	if err != nil {
		t.Fatalf("allocSlots: %v", err)
	}
	if len(slots) != 16 {
		t.Errorf("slot count = %d, want 16", len(slots))
	}
	if block != nil {
		t.Errorf("zero-size slots should not consult the allocator, got block of %d bytes", len(block))
	}
}

func TestAllocSlotsOverflow(t *testing.T) {
	type wide struct{ a, b, c, d int64 }
	if _, _, err := allocSlots[wide](HeapAllocator{}, math.MaxInt/16); err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}
