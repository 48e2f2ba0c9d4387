package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTradePublisher(t *testing.T) {
	publisher := NewMemoryTradePublisher()
	assert.Equal(t, 0, publisher.Count())

	publisher.Publish(
		Trade{TakerOrderID: "t1", MakerOrderID: "m1", Price: d(900), Quantity: d(5)},
		Trade{TakerOrderID: "t1", MakerOrderID: "m2", Price: d(901), Quantity: d(3)},
	)

	require.Equal(t, 2, publisher.Count())
	assert.Equal(t, "m1", publisher.Get(0).MakerOrderID)
	assert.Equal(t, "m2", publisher.Get(1).MakerOrderID)

	trades := publisher.Trades()
	require.Len(t, trades, 2)

	// The returned slice is a copy.
	trades[0].MakerOrderID = "mutated"
	assert.Equal(t, "m1", publisher.Get(0).MakerOrderID)
}
