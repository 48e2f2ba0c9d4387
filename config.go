package match

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Config carries the construction-time parameters of a book: the
// bounded price range, the tick granularity, and the per-side resting
// order capacity. The ladder pre-allocates one level per tick in
// [PriceMin, PriceMax] and each side pre-allocates Capacity order
// slots, so all three together fix the memory footprint up front.
type Config struct {
	PriceMin decimal.Decimal `json:"price_min"`
	PriceMax decimal.Decimal `json:"price_max"`
	TickSize decimal.Decimal `json:"tick_size"`
	Capacity int             `json:"capacity"`
}

// Validate checks the configuration once; NewOrderBook refuses invalid
// configs so array sizing never sees bad input.
func (c Config) Validate() error {
	if !c.TickSize.IsPositive() {
		return fmt.Errorf("tick size %s must be positive: %w", c.TickSize, ErrInvalidParam)
	}
	if c.PriceMin.IsNegative() {
		return fmt.Errorf("price min %s must not be negative: %w", c.PriceMin, ErrInvalidParam)
	}
	if c.PriceMax.LessThan(c.PriceMin) {
		return fmt.Errorf("price max %s is below price min %s: %w", c.PriceMax, c.PriceMin, ErrInvalidParam)
	}
	if _, r := c.PriceMax.Sub(c.PriceMin).QuoRem(c.TickSize, 0); !r.IsZero() {
		return fmt.Errorf("price range [%s, %s] is not a whole number of ticks of %s: %w",
			c.PriceMin, c.PriceMax, c.TickSize, ErrInvalidParam)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity %d must be positive: %w", c.Capacity, ErrInvalidParam)
	}
	return nil
}

// numLevels is the ladder length: one level per tick, bounds inclusive.
// Only meaningful after Validate.
func (c Config) numLevels() int {
	q, _ := c.PriceMax.Sub(c.PriceMin).QuoRem(c.TickSize, 0)
	return int(q.IntPart()) + 1
}
