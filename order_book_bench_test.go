package match

import (
	"math/rand"
	"testing"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

// BenchmarkSubmitOrder drives the synchronous core with seeded random
// flow spread across the whole ladder.
func BenchmarkSubmitOrder(b *testing.B) {
	cfg := Config{
		PriceMin: decimal.NewFromInt(800),
		PriceMax: decimal.NewFromInt(1200),
		TickSize: decimal.NewFromInt(1),
		Capacity: 1 << 20,
	}
	book, err := NewOrderBook(cfg, NewDiscardTradePublisher())
	if err != nil {
		b.Fatal(err)
	}

	// Use fixed seed for repeatability
	rng := rand.New(rand.NewSource(5))

	// Pre-compute decimal prices and sizes to keep allocation out of
	// the measured loop.
	priceCache := make([]decimal.Decimal, 401)
	for i := range priceCache {
		priceCache[i] = decimal.NewFromInt(int64(800 + i))
	}
	sizeCache := make([]decimal.Decimal, 10)
	for i := range sizeCache {
		sizeCache[i] = decimal.NewFromInt(int64(i + 1))
	}

	const poolSize = 65536
	ids := make([]string, poolSize)
	for i := range ids {
		ids[i] = xid.New().String()
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		price := priceCache[rng.Intn(len(priceCache))]
		size := sizeCache[rng.Intn(len(sizeCache))]
		side := Buy
		if rng.Intn(2) == 0 {
			side = Sell
		}

		_, _ = book.SubmitOrder(price, size, ids[i%poolSize], side)
	}
}

// BenchmarkSubmitOrderTopOfBook concentrates flow near the spread,
// where the O(1) cursor update path dominates and depletion rescans
// are rare.
func BenchmarkSubmitOrderTopOfBook(b *testing.B) {
	cfg := Config{
		PriceMin: decimal.NewFromInt(9500),
		PriceMax: decimal.NewFromInt(10500),
		TickSize: decimal.NewFromInt(1),
		Capacity: 1 << 20,
	}
	book, err := NewOrderBook(cfg, NewDiscardTradePublisher())
	if err != nil {
		b.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	midPrice := int64(10000)

	priceCache := make([]decimal.Decimal, 1001)
	for i := int64(0); i <= 1000; i++ {
		priceCache[i] = decimal.NewFromInt(midPrice - 500 + i)
	}
	sizeOne := decimal.NewFromInt(1)

	const poolSize = 65536
	ids := make([]string, poolSize)
	for i := range ids {
		ids[i] = xid.New().String()
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var priceIdx int
		side := Buy

		// 80/20 distribution: most flow within ten ticks of the mid.
		if rng.Intn(100) < 80 {
			offset := rng.Intn(10) + 1
			if rng.Intn(2) == 0 {
				priceIdx = 500 - offset
			} else {
				side = Sell
				priceIdx = 500 + offset
			}
		} else {
			offset := rng.Intn(490) + 11
			if rng.Intn(2) == 0 {
				priceIdx = 500 - offset
			} else {
				side = Sell
				priceIdx = 500 + offset
			}
		}

		_, _ = book.SubmitOrder(priceCache[priceIdx], sizeOne, ids[i%poolSize], side)
	}
}
