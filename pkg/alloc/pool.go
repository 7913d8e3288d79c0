package alloc

import (
	"sync/atomic"
	"unsafe"
)

// poolNode wraps a pooled value with a freelist link. value must stay the
// first field: Pool casts a *T back to *poolNode[T] on Free, relying on
// their addresses coinciding.
type poolNode[T any] struct {
	value T
	next  *poolNode[T]
}

// Pool is a lock-free, fixed-capacity allocator for *T: a Treiber-stack
// freelist layered over an Arena. Allocate either pops a previously-freed
// node or, if the freelist is empty, bumps the arena; Free pushes the node
// back onto the freelist instead of returning it to the OS. Nothing under
// concurrent MCTS search ever calls a general-purpose allocator.
type Pool[T any] struct {
	arena    *Arena
	freeHead atomic.Pointer[poolNode[T]]
}

// NewPool creates a pool backed by a fresh Arena of capacityBytes.
func NewPool[T any](capacityBytes uint64) *Pool[T] {
	return &Pool[T]{arena: NewArena(capacityBytes)}
}

// Allocate returns a zeroed *T, or nil if the pool's arena is exhausted
// and the freelist is empty.
func (p *Pool[T]) Allocate() *T {
	for {
		head := p.freeHead.Load()
		if head == nil {
			node := Allocate[poolNode[T]](p.arena)
			if node == nil {
				return nil
			}
			return &node.value
		}
		if p.freeHead.CompareAndSwap(head, head.next) {
			var zero T
			head.value = zero
			head.next = nil
			return &head.value
		}
	}
}

// Free returns ptr to the freelist. ptr must have come from Allocate on
// this same pool and must not be used again afterwards.
func (p *Pool[T]) Free(ptr *T) {
	node := (*poolNode[T])(unsafe.Pointer(ptr))
	for {
		head := p.freeHead.Load()
		node.next = head
		if p.freeHead.CompareAndSwap(head, node) {
			return
		}
	}
}

// Clear drops the entire freelist and rewinds the backing arena. The
// caller must guarantee nothing still holds a pointer allocated from this
// pool, exactly like Arena.Clear.
func (p *Pool[T]) Clear() {
	p.freeHead.Store(nil)
	p.arena.Clear()
}

// UsedBytes reports the backing arena's current usage.
func (p *Pool[T]) UsedBytes() uint64 {
	return p.arena.UsedBytes()
}

// Close releases the backing arena's memory.
func (p *Pool[T]) Close() error {
	return p.arena.Close()
}
