package match

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadderIndexOf(t *testing.T) {
	cfg := Config{
		PriceMin: decimal.NewFromInt(800),
		PriceMax: decimal.NewFromInt(1200),
		TickSize: decimal.NewFromInt(1),
		Capacity: 16,
	}
	require.NoError(t, cfg.Validate())
	l := newLadder(cfg)
	require.Equal(t, 401, l.size())

	t.Run("bounds map to first and last level", func(t *testing.T) {
		idx, err := l.indexOf(decimal.NewFromInt(800))
		require.NoError(t, err)
		assert.Equal(t, 0, idx)

		idx, err = l.indexOf(decimal.NewFromInt(1200))
		require.NoError(t, err)
		assert.Equal(t, 400, idx)
	})

	t.Run("level carries its own price", func(t *testing.T) {
		idx, err := l.indexOf(decimal.NewFromInt(901))
		require.NoError(t, err)
		assert.Equal(t, 101, idx)
		assert.True(t, l.level(idx).price.Equal(decimal.NewFromInt(901)))
	})

	t.Run("below range is rejected", func(t *testing.T) {
		_, err := l.indexOf(decimal.NewFromInt(799))
		assert.ErrorIs(t, err, ErrPriceOutOfRange)
	})

	t.Run("above range is rejected", func(t *testing.T) {
		_, err := l.indexOf(decimal.NewFromInt(1201))
		assert.ErrorIs(t, err, ErrPriceOutOfRange)
	})
}

func TestLadderFractionalTick(t *testing.T) {
	cfg := Config{
		PriceMin: decimal.RequireFromString("100"),
		PriceMax: decimal.RequireFromString("101"),
		TickSize: decimal.RequireFromString("0.25"),
		Capacity: 16,
	}
	require.NoError(t, cfg.Validate())
	l := newLadder(cfg)
	require.Equal(t, 5, l.size())

	idx, err := l.indexOf(decimal.RequireFromString("100.75"))
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.True(t, l.level(3).price.Equal(decimal.RequireFromString("100.75")))

	// A price between ticks addresses no level.
	_, err = l.indexOf(decimal.RequireFromString("100.30"))
	assert.ErrorIs(t, err, ErrPriceOffTick)
}

func TestLadderLevelsStartEmpty(t *testing.T) {
	cfg := Config{
		PriceMin: decimal.NewFromInt(10),
		PriceMax: decimal.NewFromInt(20),
		TickSize: decimal.NewFromInt(5),
		Capacity: 4,
	}
	require.NoError(t, cfg.Validate())
	l := newLadder(cfg)

	require.Equal(t, 3, l.size())
	for i := 0; i < l.size(); i++ {
		lvl := l.level(i)
		assert.True(t, lvl.empty())
		assert.True(t, lvl.totalSize.IsZero())
		assert.Equal(t, nilHandle, lvl.head)
		assert.Equal(t, nilHandle, lvl.tail)
	}
}
