package match

import (
	"fmt"
	"io"
)

// Dump writes a human-readable view of both sides to w: every
// non-empty level from best to worst with its queued orders in FIFO
// order. Diagnostic only; it reads book state directly, so it follows
// the same single-goroutine discipline as SubmitOrder.
func (book *OrderBook) Dump(w io.Writer) {
	book.bids.dump(w, "BIDS")
	book.asks.dump(w, "ASKS")
}

func (s *bookSide) dump(w io.Writer, name string) {
	fmt.Fprintf(w, "=== %s ===\n", name)
	s.walkBestToWorst(func(lvl *priceLevel) bool {
		fmt.Fprintf(w, "Price %s (total %s) ->", lvl.price, lvl.totalSize)
		for h := lvl.head; h != nilHandle; h = s.arena.at(h).next {
			slot := s.arena.at(h)
			fmt.Fprintf(w, " [id=%s, qty=%s]", slot.id, slot.size)
		}
		fmt.Fprintln(w)
		return true
	})
	fmt.Fprintln(w)
}
