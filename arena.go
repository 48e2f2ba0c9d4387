package match

import (
	"github.com/shopspring/decimal"
)

// handle is a stable index into an arena slab. A handle stays valid for
// as long as the order rests in the book; bounds-checked integer
// handles replace the raw pointer links of a classic intrusive pool.
type handle = int32

const nilHandle handle = -1

// orderSlot is one resting order: its caller-supplied ID, its remaining
// size, and the forward link used while the slot sits in a level's FIFO
// queue. The same link threads the free list between uses.
type orderSlot struct {
	id   string
	size decimal.Decimal
	next handle
}

// orderArena is a fixed-capacity pool of order slots with O(1)
// acquire/release through an intrusive free list. The slab never grows
// after construction; exhaustion is reported, not fatal.
type orderArena struct {
	slots []orderSlot
	free  handle
	live  int64
}

func newOrderArena(capacity int) *orderArena {
	a := &orderArena{
		slots: make([]orderSlot, capacity),
	}
	for i := 0; i < capacity-1; i++ {
		a.slots[i].next = handle(i + 1)
	}
	a.slots[capacity-1].next = nilHandle
	a.free = 0
	return a
}

// acquire pops the free-list head. The second result is false when the
// arena is exhausted.
func (a *orderArena) acquire() (handle, bool) {
	if a.free == nilHandle {
		return nilHandle, false
	}
	h := a.free
	a.free = a.slots[h].next
	a.slots[h].next = nilHandle
	a.live++
	return h, true
}

// release returns a slot to the free list. The slot is cleared so the
// ID string does not outlive the order.
func (a *orderArena) release(h handle) {
	a.slots[h] = orderSlot{next: a.free}
	a.free = h
	a.live--
}

func (a *orderArena) at(h handle) *orderSlot {
	return &a.slots[h]
}

func (a *orderArena) capacity() int {
	return len(a.slots)
}
