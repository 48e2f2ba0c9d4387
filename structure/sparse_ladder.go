// Package structure holds alternative order book data structures and
// the benchmarks that justify the dense ladder used by the engine.
package structure

import (
	"github.com/huandu/skiplist"
	"github.com/shopspring/decimal"
)

// SparseLevel is one aggregated price level of a sparse ladder.
type SparseLevel struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

// SparseLadder is a skiplist-backed price ladder for instruments whose
// tick range is too wide to pre-allocate densely. Only non-empty
// levels exist; lookup and best-price queries cost O(log n) in the
// number of levels, against the dense ladder's O(1) array index and
// its cache-friendly post-depletion scan.
type SparseLadder struct {
	list *skiplist.SkipList
}

// NewBidLadder creates a sparse ladder sorted high price first.
func NewBidLadder() *SparseLadder {
	return &SparseLadder{
		list: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d2.Cmp(d1)
		})),
	}
}

// NewAskLadder creates a sparse ladder sorted low price first.
func NewAskLadder() *SparseLadder {
	return &SparseLadder{
		list: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			d1, _ := lhs.(decimal.Decimal)
			d2, _ := rhs.(decimal.Decimal)
			return d1.Cmp(d2)
		})),
	}
}

// Add accumulates size at a price level, creating the level if absent.
func (l *SparseLadder) Add(price decimal.Decimal, size decimal.Decimal) {
	if v, ok := l.list.GetValue(price); ok {
		lvl, _ := v.(*SparseLevel)
		lvl.Size = lvl.Size.Add(size)
		return
	}
	l.list.Set(price, &SparseLevel{Price: price, Size: size})
}

// Best returns the best non-empty level, or nil when the ladder is
// empty.
func (l *SparseLadder) Best() *SparseLevel {
	el := l.list.Front()
	if el == nil {
		return nil
	}
	lvl, _ := el.Value.(*SparseLevel)
	return lvl
}

// Reduce takes size off a level and removes the level once drained.
// Returns false when the level does not exist or holds less than size.
func (l *SparseLadder) Reduce(price decimal.Decimal, size decimal.Decimal) bool {
	v, ok := l.list.GetValue(price)
	if !ok {
		return false
	}
	lvl, _ := v.(*SparseLevel)
	if lvl.Size.LessThan(size) {
		return false
	}
	lvl.Size = lvl.Size.Sub(size)
	if lvl.Size.IsZero() {
		l.list.Remove(price)
	}
	return true
}

// Len returns the number of non-empty levels.
func (l *SparseLadder) Len() int {
	return l.list.Len()
}
