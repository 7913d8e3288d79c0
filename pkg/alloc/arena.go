// Package alloc provides the bump-pointer arena and lock-free pool
// allocators the search tree is built from. Nodes are never freed one at a
// time back to the OS; instead whole subtrees are returned to a Pool's
// freelist and its backing Arena is only ever grown by bumping a cursor,
// so a tree search never pays a general-purpose allocator's overhead.
package alloc

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Arena is a single fixed-capacity region of memory (reserved once via
// mmap) handed out by bumping an atomic cursor. It never returns memory to
// the OS until Close; Clear just rewinds the cursor, reusing the same
// pages for the next search.
type Arena struct {
	data     []byte
	used     atomic.Uint64
	capacity uint64
}

// NewArena reserves capacityBytes of anonymous, zero-filled memory via
// mmap. Panics if the reservation fails — there is no sensible fallback
// for a search tree that can't get its backing memory.
func NewArena(capacityBytes uint64) *Arena {
	data, err := unix.Mmap(-1, 0, int(capacityBytes), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		panic(fmt.Sprintf("alloc: mmap %d bytes failed: %v", capacityBytes, err))
	}
	return &Arena{data: data, capacity: capacityBytes}
}

// Close releases the arena's backing memory via munmap. The arena must not
// be used afterwards.
func (a *Arena) Close() error {
	return unix.Munmap(a.data)
}

// AllocateBytes bumps the cursor by size bytes, aligned to align (which
// must be a power of two), and returns the resulting slice, or nil if the
// arena is exhausted.
func (a *Arena) AllocateBytes(size, align uint64) []byte {
	for {
		used := a.used.Load()
		aligned := (used + align - 1) &^ (align - 1)
		next := aligned + size
		if next > a.capacity {
			return nil
		}
		if a.used.CompareAndSwap(used, next) {
			return a.data[aligned:next:next]
		}
	}
}

// Clear rewinds the cursor to the start, making the whole arena available
// again. The caller must guarantee nothing still holds a pointer into it.
func (a *Arena) Clear() {
	a.used.Store(0)
}

// UsedBytes reports how much of the arena is currently handed out.
func (a *Arena) UsedBytes() uint64 {
	return a.used.Load()
}

// CapacityBytes reports the arena's total size.
func (a *Arena) CapacityBytes() uint64 {
	return a.capacity
}

// Allocate carves a zeroed *T out of the arena. Returns nil if the arena
// is exhausted; callers that can't tolerate that (e.g. a hard real-time
// budget) should size the arena generously up front rather than handle
// nil deep in a search loop.
func Allocate[T any](a *Arena) *T {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	align := uint64(unsafe.Alignof(zero))
	b := a.AllocateBytes(size, align)
	if b == nil {
		return nil
	}
	// Memory rewound by Clear still holds earlier allocations' bytes.
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}
