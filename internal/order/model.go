package order

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusFailed   Status = "FAILED"
	StatusCanceled Status = "CANCELED"
)

type Order struct {
	ID             uint
	UserID         uint
	Total          float64
	Status         Status
	GatewayOrderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
