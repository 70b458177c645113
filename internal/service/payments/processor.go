// Package payments turns at-least-once webhook deliveries from the payment
// provider into at-most-once order-state mutations. The event ledger's
// processed flag is the only mutual-exclusion mechanism; no in-process locks
// exist and none of the steps share a transaction.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/kafka"
	"github.com/theibericoexperience-dev/last-sub001/internal/provider"
	"github.com/theibericoexperience-dev/last-sub001/internal/repository"
)

const EventCheckoutSessionCompleted = "checkout.session.completed"

type EventProcessor interface {
	ProcessEvent(ctx context.Context, event domain.ProviderEvent) (domain.ProcessResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Processor struct {
	ledger        repository.EventLedger
	orders        repository.OrderRepository
	payments      repository.PaymentRecordRepository
	provider      provider.PaymentIntentFetcher
	producer      Producer
	paymentsTopic string
	log           *slog.Logger
}

type ProcessorOption func(*Processor)

// WithProducer enables the post-processing kafka notification. Publishing is
// best effort and never fails the webhook.
func WithProducer(p Producer, topic string) ProcessorOption {
	return func(proc *Processor) {
		proc.producer = p
		proc.paymentsTopic = topic
	}
}

func NewProcessor(
	ledger repository.EventLedger,
	orders repository.OrderRepository,
	payments repository.PaymentRecordRepository,
	fetcher provider.PaymentIntentFetcher,
	opts ...ProcessorOption,
) *Processor {
	processor := &Processor{
		ledger:   ledger,
		orders:   orders,
		payments: payments,
		provider: fetcher,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(processor)
	}
	return processor
}

// ProcessEvent applies one provider event. A returned error means the caller
// must respond with a retryable status so the provider redelivers; the
// ledger check makes that redelivery safe.
func (p *Processor) ProcessEvent(ctx context.Context, event domain.ProviderEvent) (domain.ProcessResult, error) {
	processed, err := p.ledger.IsProcessed(ctx, event.ID)
	if err != nil {
		return domain.ProcessResult{}, fmt.Errorf("check ledger for %s: %w", event.ID, err)
	}
	if processed {
		p.log.Info("event already processed, skipping", "event_id", event.ID, "event_type", event.Type)
		return domain.ProcessResult{Skipped: true, Handled: true}, nil
	}

	// Record the event before applying effects so a concurrent duplicate
	// delivery observes it as seen. The window between this upsert and the
	// processed flag below is closed by redelivery being idempotent, not by
	// a transaction.
	if _, err := p.ledger.RecordSeen(ctx, event.ID, event.Type, event.Object); err != nil {
		return domain.ProcessResult{}, fmt.Errorf("record event %s: %w", event.ID, err)
	}

	switch event.Type {
	case EventCheckoutSessionCompleted:
		result, err := p.handleCheckoutCompleted(ctx, event)
		if err != nil {
			p.recordFailure(ctx, event.ID, err)
			return domain.ProcessResult{}, err
		}
		return result, nil
	default:
		// Unrecognized events are acknowledged so the provider stops
		// redelivering them.
		if err := p.ledger.MarkProcessed(ctx, event.ID); err != nil {
			return domain.ProcessResult{}, fmt.Errorf("acknowledge event %s: %w", event.ID, err)
		}
		p.log.Info("unhandled event type acknowledged", "event_id", event.ID, "event_type", event.Type)
		return domain.ProcessResult{Handled: false}, nil
	}
}

type checkoutSession struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

func (p *Processor) handleCheckoutCompleted(ctx context.Context, event domain.ProviderEvent) (domain.ProcessResult, error) {
	var session checkoutSession
	if err := json.Unmarshal(event.Object, &session); err != nil {
		return domain.ProcessResult{}, fmt.Errorf("decode checkout session from %s: %w", event.ID, err)
	}

	updated, err := p.markOrderPaid(ctx, orderRef(event, session), session.ID)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	if session.PaymentIntent != "" {
		if err := p.ensurePaymentRecord(ctx, session.PaymentIntent); err != nil {
			return domain.ProcessResult{}, err
		}
	}

	if err := p.ledger.MarkProcessed(ctx, event.ID); err != nil {
		return domain.ProcessResult{}, fmt.Errorf("finalize event %s: %w", event.ID, err)
	}

	p.log.Info("checkout session applied", "event_id", event.ID, "session_id", session.ID, "orders_updated", updated)
	p.notifyPaid(ctx, event, session, updated)
	return domain.ProcessResult{Handled: true, UpdatedOrders: updated}, nil
}

// orderRef prefers the envelope metadata, then the session's own metadata.
// Both carry the canonical order_id key by the time they reach the processor.
func orderRef(event domain.ProviderEvent, session checkoutSession) string {
	if ref, ok := event.Metadata[domain.MetadataOrderID]; ok && ref != "" {
		return ref
	}
	return session.Metadata[domain.MetadataOrderID]
}

// markOrderPaid resolves the referenced order and transitions it to paid. A
// UUID reference may live in either the uuid column or the textual secondary
// column while the two id schemes coexist; a numeric reference uses the
// legacy scheme; no reference at all falls back to the provider session id
// stored on the order at booking time.
func (p *Processor) markOrderPaid(ctx context.Context, ref, sessionID string) (int64, error) {
	if ref == "" {
		if sessionID == "" {
			return 0, errors.New("event carries no order reference and no session id")
		}
		return p.orders.MarkPaidBySessionID(ctx, sessionID)
	}
	if id, err := uuid.Parse(ref); err == nil {
		return p.orders.MarkPaidByPublicID(ctx, id)
	}
	legacyID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("order reference %q is neither uuid nor legacy id", ref)
	}
	return p.orders.MarkPaidByLegacyID(ctx, legacyID)
}

// ensurePaymentRecord lazily mirrors the provider payment intent. The
// existence check and insert are separate statements, so two concurrent
// deliveries of the same event that both pass the check before either ledger
// write lands can insert twice; deduplication past the ledger is left to the
// store's schema.
func (p *Processor) ensurePaymentRecord(ctx context.Context, intentID string) error {
	exists, err := p.payments.ExistsByIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("check payment record %s: %w", intentID, err)
	}
	if exists {
		return nil
	}

	detail, err := p.provider.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	record := &domain.PaymentRecord{
		ProviderPaymentIntentID: detail.ID,
		AmountCents:             detail.AmountCents,
		Currency:                detail.Currency,
		Status:                  detail.Status,
		Raw:                     detail.Raw,
	}
	if err := p.payments.Insert(ctx, record); err != nil {
		return fmt.Errorf("insert payment record %s: %w", intentID, err)
	}
	return nil
}

func (p *Processor) recordFailure(ctx context.Context, eventID string, procErr error) {
	if err := p.ledger.RecordFailure(ctx, eventID, procErr); err != nil {
		p.log.Error("record event failure", "event_id", eventID, "error", err)
	}
}

func (p *Processor) notifyPaid(ctx context.Context, event domain.ProviderEvent, session checkoutSession, updated int64) {
	if p.producer == nil || p.paymentsTopic == "" {
		return
	}
	note := kafka.PaymentEvent{
		Type:            "order_paid",
		EventID:         event.ID,
		SessionID:       session.ID,
		PaymentIntentID: session.PaymentIntent,
		OrdersUpdated:   updated,
		OccurredAt:      time.Now().UTC(),
	}
	if err := p.producer.Publish(ctx, p.paymentsTopic, event.ID, note); err != nil {
		p.log.Warn("publish order_paid notification failed", "event_id", event.ID, "error", err)
	}
}

var _ EventProcessor = (*Processor)(nil)
