package structure

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

// The engine's dense ladder answers "which level" with one array index
// and finds the next best level with a linear scan over contiguous
// memory. These benchmarks measure the sparse alternative so the
// trade-off stays visible: for bounded, modest tick ranges the dense
// array wins; the skiplist only pays off when the range is too wide to
// pre-allocate.

func BenchmarkSparseLadderAdd(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	prices := make([]decimal.Decimal, 1024)
	for i := range prices {
		prices[i] = decimal.NewFromInt(int64(800 + rng.Intn(401)))
	}
	size := decimal.NewFromInt(5)

	ladder := NewBidLadder()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ladder.Add(prices[i%len(prices)], size)
	}
}

func BenchmarkSparseLadderBestAndReduce(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	ladder := NewAskLadder()
	for i := 0; i < 400; i++ {
		ladder.Add(decimal.NewFromInt(int64(800+i)), decimal.NewFromInt(int64(rng.Intn(50)+1)))
	}
	one := decimal.NewFromInt(1)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		best := ladder.Best()
		if best == nil {
			b.StopTimer()
			for j := 0; j < 400; j++ {
				ladder.Add(decimal.NewFromInt(int64(800+j)), decimal.NewFromInt(int64(rng.Intn(50)+1)))
			}
			b.StartTimer()
			continue
		}
		ladder.Reduce(best.Price, one)
	}
}
