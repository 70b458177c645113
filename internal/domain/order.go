package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order rows are created by the booking flow. This service only transitions
// them to paid once the payment provider confirms a checkout session.
// PublicID is the UUID identifier introduced alongside the legacy integer ID;
// during the migration window an order may carry either or both.
type Order struct {
	ID                int64
	PublicID          uuid.NullUUID
	Status            OrderStatus
	DepositTotalCents int64
	StripeSessionID   *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
