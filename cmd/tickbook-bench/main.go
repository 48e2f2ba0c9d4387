package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	match "github.com/0x5487/tickbook"
)

type driverConfig struct {
	PriceMin  int64 `env:"PRICE_MIN" envDefault:"800"`
	PriceMax  int64 `env:"PRICE_MAX" envDefault:"1200"`
	TickSize  int64 `env:"TICK_SIZE" envDefault:"1"`
	Capacity  int   `env:"CAPACITY" envDefault:"1048576"`
	NumOrders int   `env:"NUM_ORDERS" envDefault:"1000000"`
	Seed      int64 `env:"SEED" envDefault:"5"`
}

func main() {
	cfg := driverConfig{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid environment:", err)
		os.Exit(1)
	}

	bookCfg := match.Config{
		PriceMin: decimal.NewFromInt(cfg.PriceMin),
		PriceMax: decimal.NewFromInt(cfg.PriceMax),
		TickSize: decimal.NewFromInt(cfg.TickSize),
		Capacity: cfg.Capacity,
	}

	fmt.Printf("tickbook %s\n\n", match.EngineVersion)
	if err := throughput(cfg, bookCfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := example(bookCfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// throughput replays seeded random flow across the whole ladder and
// reports orders per second.
func throughput(cfg driverConfig, bookCfg match.Config) error {
	book, err := match.NewOrderBook(bookCfg, nil)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	ticks := int((cfg.PriceMax-cfg.PriceMin)/cfg.TickSize) + 1

	priceCache := make([]decimal.Decimal, ticks)
	for i := range priceCache {
		priceCache[i] = decimal.NewFromInt(cfg.PriceMin + int64(i)*cfg.TickSize)
	}
	sizeCache := make([]decimal.Decimal, 10)
	for i := range sizeCache {
		sizeCache[i] = decimal.NewFromInt(int64(i + 1))
	}

	prices := make([]decimal.Decimal, cfg.NumOrders)
	sizes := make([]decimal.Decimal, cfg.NumOrders)
	sides := make([]match.Side, cfg.NumOrders)
	ids := make([]string, cfg.NumOrders)
	for i := 0; i < cfg.NumOrders; i++ {
		prices[i] = priceCache[rng.Intn(ticks)]
		sizes[i] = sizeCache[rng.Intn(len(sizeCache))]
		if rng.Intn(2) == 0 {
			sides[i] = match.Buy
		} else {
			sides[i] = match.Sell
		}
		ids[i] = xid.New().String()
	}

	var tradeCount, dropped int
	start := time.Now()

	for i := 0; i < cfg.NumOrders; i++ {
		trades, err := book.SubmitOrder(prices[i], sizes[i], ids[i], sides[i])
		tradeCount += len(trades)
		if err != nil {
			if errors.Is(err, match.ErrCapacityExhausted) {
				dropped++
				continue
			}
			return err
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("processed %d orders in %s (%.0f orders/sec, %d trades, %d remainders dropped)\n\n",
		cfg.NumOrders, elapsed, float64(cfg.NumOrders)/elapsed.Seconds(), tradeCount, dropped)
	return nil
}

// example runs a small worked scenario and dumps the final book.
func example(bookCfg match.Config) error {
	book, err := match.NewOrderBook(bookCfg, nil)
	if err != nil {
		return err
	}

	orders := []struct {
		price int64
		size  int64
		id    string
		side  match.Side
	}{
		{900, 20, "0", match.Buy},
		{901, 10, "1", match.Buy},
		{900, 15, "2", match.Sell},
		{902, 10, "3", match.Buy},
		{902, 5, "4", match.Sell},
	}

	var all []match.Trade
	for _, o := range orders {
		trades, err := book.SubmitOrder(decimal.NewFromInt(o.price), decimal.NewFromInt(o.size), o.id, o.side)
		if err != nil {
			return err
		}
		all = append(all, trades...)
	}

	book.Dump(os.Stdout)
	for _, trade := range all {
		fmt.Printf("Taker Order ID: %s\nMaker Order ID: %s\nPrice: %s\nQuantity: %s\n===============\n",
			trade.TakerOrderID, trade.MakerOrderID, trade.Price, trade.Quantity)
	}
	return nil
}
