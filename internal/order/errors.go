package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrHeaderWriteFailed = errors.New("failed to save order")
	ErrItemsWriteFailed  = errors.New("failed to save order items")
)
