package email

import (
	"context"
	"fmt"

	"github.com/theibericoexperience-dev/last-sub001/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.PaymentEvent) error {
	fmt.Printf("send payment confirmation for session %s (event %s, %d orders)\n", event.SessionID, event.EventID, event.OrdersUpdated)
	return nil
}
