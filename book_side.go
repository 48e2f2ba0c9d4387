package match

import (
	"github.com/shopspring/decimal"
)

// noBestLevel is the cursor sentinel for a side with no resting
// liquidity anywhere on the ladder.
const noBestLevel = -1

// bookSide owns one half of the book: a dense ladder, a fixed order
// arena, and the cached index of the best non-empty level. The cursor
// is the sole source of truth for where matching starts; it always
// points at a non-empty level or holds noBestLevel.
type bookSide struct {
	side        Side
	ladder      *ladder
	arena       *orderArena
	bestIdx     int
	levelsInUse int64
}

func newBookSide(side Side, cfg Config) *bookSide {
	return &bookSide{
		side:    side,
		ladder:  newLadder(cfg),
		arena:   newOrderArena(cfg.Capacity),
		bestIdx: noBestLevel,
	}
}

// addOrder rests an order at the given ladder index. The index has
// already been validated and the incoming order already matched
// against the contra side. Returns ErrCapacityExhausted when the arena
// has no free slot.
func (s *bookSide) addOrder(idx int, id string, size decimal.Decimal) error {
	h, ok := s.arena.acquire()
	if !ok {
		return ErrCapacityExhausted
	}
	slot := s.arena.at(h)
	slot.id = id
	slot.size = size

	lvl := s.ladder.level(idx)
	if lvl.empty() {
		s.levelsInUse++
	}
	lvl.enqueue(s.arena, h, size)
	s.updateBestAfterInsert(idx)
	return nil
}

// updateBestAfterInsert is the O(1) cursor path: a newly rested order
// moves the cursor only when its level is strictly better than the
// current best, or when the side was empty.
func (s *bookSide) updateBestAfterInsert(idx int) {
	if s.bestIdx == noBestLevel {
		s.bestIdx = idx
		return
	}
	if s.side == Buy && idx > s.bestIdx {
		s.bestIdx = idx
	} else if s.side == Sell && idx < s.bestIdx {
		s.bestIdx = idx
	}
}

// updateBestAfterDeplete rescans outward from the just-emptied best
// level toward worse prices: downward for bids, upward for asks. Worst
// case linear in ladder size, but it only runs when the best level
// empties out completely.
func (s *bookSide) updateBestAfterDeplete(oldIdx int) {
	if s.side == Buy {
		for i := oldIdx - 1; i >= 0; i-- {
			if !s.ladder.level(i).empty() {
				s.bestIdx = i
				return
			}
		}
	} else {
		for i := oldIdx + 1; i < s.ladder.size(); i++ {
			if !s.ladder.level(i).empty() {
				s.bestIdx = i
				return
			}
		}
	}
	s.bestIdx = noBestLevel
}

// crosses reports whether this side's best level is marketable against
// an incoming contra order limited to limitIdx: an incoming bid
// crosses asks priced at or below its limit, an incoming ask crosses
// bids priced at or above.
func (s *bookSide) crosses(limitIdx int) bool {
	if s.bestIdx == noBestLevel {
		return false
	}
	if s.side == Sell {
		return s.bestIdx <= limitIdx
	}
	return s.bestIdx >= limitIdx
}

// match drains this side against an incoming contra order under strict
// price-time priority: levels are consumed best-to-worst, FIFO within
// a level, and every trade prints at the maker's price. Fully filled
// makers go back to the arena; depleting the best level triggers the
// cursor rescan. Returns the incoming order's unfilled remainder and
// the extended trade slice.
func (s *bookSide) match(takerID string, limitIdx int, size decimal.Decimal, trades []Trade) (decimal.Decimal, []Trade) {
	for size.IsPositive() && s.crosses(limitIdx) {
		lvl := s.ladder.level(s.bestIdx)

		for size.IsPositive() && lvl.head != nilHandle {
			maker := s.arena.at(lvl.head)
			q := decimal.Min(maker.size, size)

			trades = append(trades, Trade{
				TakerOrderID: takerID,
				MakerOrderID: maker.id,
				Price:        lvl.price,
				Quantity:     q,
			})

			maker.size = maker.size.Sub(q)
			size = size.Sub(q)
			lvl.totalSize = lvl.totalSize.Sub(q)

			if maker.size.IsZero() {
				// Read the link before release recycles it into the free list.
				next := maker.next
				s.arena.release(lvl.head)
				lvl.head = next
				lvl.count--
				if next == nilHandle {
					lvl.tail = nilHandle
					s.levelsInUse--
					s.updateBestAfterDeplete(s.bestIdx)
				}
			}
		}
	}
	return size, trades
}

// walkBestToWorst visits non-empty levels from the best price outward.
// The visit func returns false to stop early.
func (s *bookSide) walkBestToWorst(visit func(*priceLevel) bool) {
	if s.bestIdx == noBestLevel {
		return
	}
	if s.side == Buy {
		for i := s.bestIdx; i >= 0; i-- {
			lvl := s.ladder.level(i)
			if lvl.empty() {
				continue
			}
			if !visit(lvl) {
				return
			}
		}
	} else {
		for i := s.bestIdx; i < s.ladder.size(); i++ {
			lvl := s.ladder.level(i)
			if lvl.empty() {
				continue
			}
			if !visit(lvl) {
				return
			}
		}
	}
}

// depth returns up to limit aggregated levels, best first.
func (s *bookSide) depth(limit uint32) []*DepthItem {
	items := make([]*DepthItem, 0, limit)
	s.walkBestToWorst(func(lvl *priceLevel) bool {
		items = append(items, &DepthItem{Price: lvl.price, Size: lvl.totalSize})
		return uint32(len(items)) < limit
	})
	return items
}
