package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrEmptyQuery = errors.New("search query is required")
	ErrEmptyCart  = errors.New("cart is empty")
)
