package match

import "errors"

var (
	ErrInvalidParam      = errors.New("the param is invalid")
	ErrPriceOutOfRange   = errors.New("price is outside the configured price range")
	ErrPriceOffTick      = errors.New("price is not aligned to the tick size")
	ErrCapacityExhausted = errors.New("order arena is full, the resting remainder was dropped")
	ErrTimeout           = errors.New("timeout")
	ErrShutdown          = errors.New("order book is shutting down")
)
