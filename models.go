package match

import (
	"github.com/shopspring/decimal"
)

type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// Trade is an immutable record of one match event. The price is always
// the resting (maker) order's price; price improvement accrues to the
// taker. Trades are produced per submission and never retained by the
// book.
type Trade struct {
	TakerOrderID string          `json:"taker_order_id"`
	MakerOrderID string          `json:"maker_order_id"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// PlaceOrderCommand is the input command for placing an order through
// the book's command loop. Order IDs are caller-supplied and opaque to
// the engine; uniqueness is not enforced.
type PlaceOrderCommand struct {
	ID    string          `json:"id"`
	Side  Side            `json:"side"`
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

type DepthItem struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

type Depth struct {
	Bids []*DepthItem `json:"bids"`
	Asks []*DepthItem `json:"asks"`
}

// BookStats contains usage statistics about the order book sides.
type BookStats struct {
	BidLevelCount int64
	BidOrderCount int64
	AskLevelCount int64
	AskOrderCount int64
}

// CommandType represents the type of command sent to the order book.
type CommandType int

const (
	CmdPlaceOrder CommandType = iota
	CmdDepth
	CmdGetStats
)

// Command represents a unified command sent to the order book loop.
// A single channel keeps command ordering deterministic.
type Command struct {
	Type    CommandType
	Payload any
	Resp    chan any // Optional: for synchronous response (e.g. CmdDepth)
}
