package domain

import (
	"encoding/json"
	"time"
)

// ProviderEvent is the normalized webhook envelope handed to the event
// processor. Transport concerns (signature verification, metadata key
// normalization) are resolved before this is constructed.
type ProviderEvent struct {
	ID       string
	Type     string
	Object   json.RawMessage
	Metadata map[string]string
}

// MetadataOrderID is the canonical metadata key carrying the order reference.
const MetadataOrderID = "order_id"

// IngestedEvent is one ledger row. The row is the sole authority for whether
// an event's effects have already been applied; the provider delivers
// at least once, the ledger makes application at most once.
type IngestedEvent struct {
	EventID      string
	EventType    string
	RawPayload   json.RawMessage
	Processed    bool
	ProcessedAt  *time.Time
	AttemptCount int
	LastError    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PaymentRecord mirrors one provider payment intent. At most one row exists
// per intent id; it is created lazily the first time an event references it.
type PaymentRecord struct {
	ProviderPaymentIntentID string
	AmountCents             int64
	Currency                string
	Status                  string
	Raw                     json.RawMessage
	CreatedAt               time.Time
}

// PaymentIntentDetail is what the provider-side lookup returns.
type PaymentIntentDetail struct {
	ID          string
	AmountCents int64
	Currency    string
	Status      string
	Raw         json.RawMessage
}

// ProcessResult reports the outcome of processing one provider event.
// Skipped means the ledger already had the event marked processed; Handled is
// false for event types this service does not act on (they are still
// acknowledged so the provider stops redelivering).
type ProcessResult struct {
	Skipped       bool  `json:"skipped"`
	Handled       bool  `json:"handled"`
	UpdatedOrders int64 `json:"updated_orders"`
}
