package match

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// OrderBook is a single-instrument limit order book. The matching core
// is synchronous and allocation-free on the book side: each side owns
// a pre-allocated dense ladder and a fixed order arena, so steady-state
// submission touches no dynamic book structures.
//
// Exactly one goroutine may mutate a book at a time. Callers that need
// concurrent access go through PlaceOrder and the Start loop, which
// serializes all commands onto a single consumer.
type OrderBook struct {
	cfg  Config
	bids *bookSide
	asks *bookSide

	isShutdown       atomic.Bool
	cmdChan          chan Command
	done             chan struct{}
	shutdownComplete chan struct{}
	publisher        TradePublisher
}

// NewOrderBook creates a new order book instance. The config is
// validated once here; a nil publisher discards trades produced by the
// command loop.
func NewOrderBook(cfg Config, publisher TradePublisher) (*OrderBook, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = NewDiscardTradePublisher()
	}
	return &OrderBook{
		cfg:              cfg,
		bids:             newBookSide(Buy, cfg),
		asks:             newBookSide(Sell, cfg),
		cmdChan:          make(chan Command, 32768),
		done:             make(chan struct{}),
		shutdownComplete: make(chan struct{}),
		publisher:        publisher,
	}, nil
}

// Config returns the book's construction-time configuration.
func (book *OrderBook) Config() Config {
	return book.cfg
}

// SubmitOrder resolves an incoming order fully and synchronously: it
// matches against the opposite side first, then rests any unmatched
// remainder on the order's own side. A zero size is a no-op, not an
// error. Validation failures reject before any mutation; once trades
// have been emitted they are final, so on ErrCapacityExhausted the
// returned trades are still valid and only the remainder was dropped.
//
// The book performs no self-cross protection: an order may match
// against resting liquidity the same submitter placed earlier.
func (book *OrderBook) SubmitOrder(price decimal.Decimal, size decimal.Decimal, id string, side Side) ([]Trade, error) {
	if (side != Buy && side != Sell) || len(id) == 0 || size.IsNegative() {
		return nil, ErrInvalidParam
	}
	if size.IsZero() {
		return nil, nil
	}

	// Both ladders are built from the same config, so one index serves
	// the contra-side match and the same-side rest.
	idx, err := book.asks.ladder.indexOf(price)
	if err != nil {
		return nil, err
	}

	var contra, own *bookSide
	if side == Buy {
		contra, own = book.asks, book.bids
	} else {
		contra, own = book.bids, book.asks
	}

	remaining, trades := contra.match(id, idx, size, nil)
	if remaining.IsPositive() {
		if err := own.addOrder(idx, id, remaining); err != nil {
			return trades, err
		}
	}
	return trades, nil
}

// PlaceOrder submits an order to the book's command loop
// asynchronously. Returns ErrShutdown if the book is shutting down.
func (book *OrderBook) PlaceOrder(ctx context.Context, cmd *PlaceOrderCommand) error {
	if book.isShutdown.Load() {
		return ErrShutdown
	}
	if cmd == nil || len(cmd.ID) == 0 {
		return ErrInvalidParam
	}

	select {
	case book.cmdChan <- Command{Type: CmdPlaceOrder, Payload: cmd}:
		return nil
	case <-ctx.Done():
		return ErrTimeout
	}
}

// Depth returns the current depth of the order book up to the
// specified number of levels per side.
func (book *OrderBook) Depth(limit uint32) (*Depth, error) {
	if limit == 0 {
		return nil, ErrInvalidParam
	}

	respChan := make(chan any, 1)

	select {
	case book.cmdChan <- Command{Type: CmdDepth, Payload: limit, Resp: respChan}:
	case <-time.After(time.Second):
		return nil, ErrTimeout
	}

	select {
	case res := <-respChan:
		if result, ok := res.(*Depth); ok {
			return result, nil
		}
		return nil, nil
	case <-time.After(time.Second):
		return nil, ErrTimeout
	}
}

// Stats returns usage statistics for the order book. It is thread-safe
// and interacts with the book loop via a channel.
func (book *OrderBook) Stats() (*BookStats, error) {
	respChan := make(chan any, 1)

	select {
	case book.cmdChan <- Command{Type: CmdGetStats, Resp: respChan}:
	case <-time.After(time.Second):
		return nil, ErrTimeout
	}

	select {
	case res := <-respChan:
		if result, ok := res.(*BookStats); ok {
			return result, nil
		}
		return nil, nil
	case <-time.After(time.Second):
		return nil, ErrTimeout
	}
}

// Start runs the single-consumer command loop. All book mutation
// happens on this goroutine, which keeps price-time-priority decisions
// free of locking ambiguity. Returns nil once Shutdown has been called
// and pending commands are drained.
func (book *OrderBook) Start() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-book.done:
			return book.drain()
		case cmd := <-book.cmdChan:
			book.handleCommand(cmd)
		}
	}
}

// Shutdown signals the loop to stop accepting new orders and waits for
// pending commands to be processed. Returns ctx.Err() if the context
// expires first.
func (book *OrderBook) Shutdown(ctx context.Context) error {
	if book.isShutdown.CompareAndSwap(false, true) {
		close(book.done)
	}

	select {
	case <-book.shutdownComplete:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain processes all remaining commands in the channel before
// returning.
func (book *OrderBook) drain() error {
	defer close(book.shutdownComplete)

	for {
		select {
		case cmd := <-book.cmdChan:
			if cmd.Type == CmdPlaceOrder {
				book.handleCommand(cmd)
			}
			// Read-only commands are dropped during drain.
		default:
			return nil
		}
	}
}

func (book *OrderBook) handleCommand(cmd Command) {
	switch cmd.Type {
	case CmdPlaceOrder:
		if place, ok := cmd.Payload.(*PlaceOrderCommand); ok {
			book.placeOrder(place)
		}
	case CmdDepth:
		if limit, ok := cmd.Payload.(uint32); ok && cmd.Resp != nil {
			select {
			case cmd.Resp <- book.depth(limit):
			default:
				// Non-blocking send, if no one is listening, just drop it
			}
		}
	case CmdGetStats:
		if cmd.Resp != nil {
			select {
			case cmd.Resp <- book.stats():
			default:
			}
		}
	}
}

// placeOrder runs one submission inside the loop and hands the
// resulting trades to the publisher. Rejections and capacity drops are
// observable in the log rather than silently discarded.
func (book *OrderBook) placeOrder(cmd *PlaceOrderCommand) {
	trades, err := book.SubmitOrder(cmd.Price, cmd.Size, cmd.ID, cmd.Side)
	if err != nil {
		if errors.Is(err, ErrCapacityExhausted) {
			logger.Warn("resting remainder dropped, arena is full",
				"order_id", cmd.ID, "side", cmd.Side.String())
		} else {
			logger.Warn("order rejected",
				"order_id", cmd.ID, "side", cmd.Side.String(), "error", err.Error())
		}
	}
	if len(trades) > 0 {
		book.publisher.Publish(trades...)
	}
}

// depth builds the aggregated depth snapshot. Loop-internal.
func (book *OrderBook) depth(limit uint32) *Depth {
	return &Depth{
		Bids: book.bids.depth(limit),
		Asks: book.asks.depth(limit),
	}
}

// stats builds the side counters. Loop-internal.
func (book *OrderBook) stats() *BookStats {
	return &BookStats{
		BidLevelCount: book.bids.levelsInUse,
		BidOrderCount: book.bids.arena.live,
		AskLevelCount: book.asks.levelsInUse,
		AskOrderCount: book.asks.arena.live,
	}
}
