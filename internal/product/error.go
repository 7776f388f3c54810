package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrNoFields        = errors.New("no fields to update")
)
