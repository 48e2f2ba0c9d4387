package match

import (
	"github.com/shopspring/decimal"
)

// priceLevel is one tick of the ladder: the fixed level price, the
// aggregate resting size, and head/tail handles forming an intrusive
// FIFO queue of orders in arrival order. totalSize always equals the
// sum of the queued orders' remaining sizes, so the level is empty
// exactly when totalSize is zero.
type priceLevel struct {
	price     decimal.Decimal
	totalSize decimal.Decimal
	count     int64
	head      handle
	tail      handle
}

func (lvl *priceLevel) empty() bool {
	return lvl.head == nilHandle
}

// enqueue appends an order to the FIFO tail and bumps the aggregate.
func (lvl *priceLevel) enqueue(a *orderArena, h handle, size decimal.Decimal) {
	if lvl.head == nilHandle {
		lvl.head = h
		lvl.tail = h
	} else {
		a.at(lvl.tail).next = h
		lvl.tail = h
	}
	lvl.totalSize = lvl.totalSize.Add(size)
	lvl.count++
}

// ladder is the dense per-tick price ladder. It is deliberately not a
// sparse structure: one level exists for every tick in the configured
// range, so level lookup is a single array index and the
// post-depletion rescan walks contiguous memory near the best price.
type ladder struct {
	priceMin decimal.Decimal
	tickSize decimal.Decimal
	levels   []priceLevel
}

func newLadder(cfg Config) *ladder {
	l := &ladder{
		priceMin: cfg.PriceMin,
		tickSize: cfg.TickSize,
		levels:   make([]priceLevel, cfg.numLevels()),
	}
	for i := range l.levels {
		l.levels[i] = priceLevel{
			price: cfg.PriceMin.Add(cfg.TickSize.Mul(decimal.NewFromInt(int64(i)))),
			head:  nilHandle,
			tail:  nilHandle,
		}
	}
	return l
}

// indexOf maps a price onto its level index via the linear transform
// (price - priceMin) / tickSize. Prices outside the range or between
// ticks address no level and are rejected before any state mutation.
func (l *ladder) indexOf(price decimal.Decimal) (int, error) {
	diff := price.Sub(l.priceMin)
	if diff.IsNegative() {
		return 0, ErrPriceOutOfRange
	}
	q, r := diff.QuoRem(l.tickSize, 0)
	if !r.IsZero() {
		return 0, ErrPriceOffTick
	}
	idx := int(q.IntPart())
	if idx >= len(l.levels) {
		return 0, ErrPriceOutOfRange
	}
	return idx, nil
}

func (l *ladder) level(i int) *priceLevel {
	return &l.levels[i]
}

func (l *ladder) size() int {
	return len(l.levels)
}
