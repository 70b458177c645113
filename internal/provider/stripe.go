package provider

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

// PaymentIntentFetcher is the provider-side lookup the event processor needs
// when an event references a payment intent that has no local record yet.
type PaymentIntentFetcher interface {
	GetPaymentIntent(ctx context.Context, id string) (*domain.PaymentIntentDetail, error)
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (c *StripeClient) GetPaymentIntent(ctx context.Context, id string) (*domain.PaymentIntentDetail, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("fetch payment intent %s: %w", id, err)
	}
	raw, err := json.Marshal(pi)
	if err != nil {
		return nil, fmt.Errorf("encode payment intent %s: %w", id, err)
	}
	return &domain.PaymentIntentDetail{
		ID:          pi.ID,
		AmountCents: pi.Amount,
		Currency:    string(pi.Currency),
		Status:      string(pi.Status),
		Raw:         raw,
	}, nil
}

var _ PaymentIntentFetcher = (*StripeClient)(nil)
