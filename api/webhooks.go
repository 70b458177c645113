package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/metrics"
	"github.com/theibericoexperience-dev/last-sub001/internal/service/payments"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	processor     payments.EventProcessor
	webhookSecret string
}

func NewWebhookHandler(processor payments.EventProcessor, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{processor: processor, webhookSecret: webhookSecret}
}

func (h *WebhookHandler) Register(router *gin.RouterGroup) {
	router.POST("/stripe", h.stripe)
}

func (h *WebhookHandler) stripe(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}

	event, err := h.parseEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics.WebhookEventsTotal.Inc()
	result, err := h.processor.ProcessEvent(c.Request.Context(), event)
	if err != nil {
		metrics.WebhookEventsFailedTotal.Inc()
		// A non-2xx response tells the provider to redeliver later; the
		// ledger's processed flag makes the retry safe.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch {
	case result.Skipped:
		metrics.WebhookEventsSkippedTotal.Inc()
	case !result.Handled:
		metrics.WebhookEventsUnhandledTotal.Inc()
	default:
		metrics.OrdersMarkedPaidTotal.Add(float64(result.UpdatedOrders))
	}

	c.JSON(http.StatusOK, gin.H{
		"received":       true,
		"skipped":        result.Skipped,
		"handled":        result.Handled,
		"orders_updated": result.UpdatedOrders,
	})
}

// parseEvent verifies the provider signature when a secret is configured and
// normalizes the envelope. Metadata key variants (orderId, orderID) are
// unified to the canonical order_id here so the processor only ever sees one
// shape.
func (h *WebhookHandler) parseEvent(payload []byte, sigHeader string) (domain.ProviderEvent, error) {
	var stripeEvent stripe.Event
	if h.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, sigHeader, h.webhookSecret)
		if err != nil {
			return domain.ProviderEvent{}, fmt.Errorf("verify signature: %w", err)
		}
		stripeEvent = verified
	} else if err := json.Unmarshal(payload, &stripeEvent); err != nil {
		return domain.ProviderEvent{}, fmt.Errorf("decode event: %w", err)
	}

	var object json.RawMessage
	if stripeEvent.Data != nil {
		object = json.RawMessage(stripeEvent.Data.Raw)
	}

	metadata := make(map[string]string)
	var embedded struct {
		Metadata map[string]string `json:"metadata"`
	}
	if len(object) > 0 {
		_ = json.Unmarshal(object, &embedded)
	}
	for key, value := range embedded.Metadata {
		switch key {
		case "orderId", "orderID", domain.MetadataOrderID:
			metadata[domain.MetadataOrderID] = value
		default:
			metadata[key] = value
		}
	}

	return domain.ProviderEvent{
		ID:       stripeEvent.ID,
		Type:     string(stripeEvent.Type),
		Object:   object,
		Metadata: metadata,
	}, nil
}
