package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	QuotesComputedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quotes_computed_total",
			Help: "Total number of pricing quotes computed",
		},
	)

	WebhookEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of provider webhook events received",
		},
	)

	WebhookEventsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_skipped_total",
			Help: "Total number of webhook events skipped as already processed",
		},
	)

	WebhookEventsUnhandledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_unhandled_total",
			Help: "Total number of webhook events acknowledged without action",
		},
	)

	WebhookEventsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_failed_total",
			Help: "Total number of webhook events that failed processing",
		},
	)

	OrdersMarkedPaidTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_marked_paid_total",
			Help: "Total number of orders transitioned to paid",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		QuotesComputedTotal,
		WebhookEventsTotal,
		WebhookEventsSkippedTotal,
		WebhookEventsUnhandledTotal,
		WebhookEventsFailedTotal,
		OrdersMarkedPaidTotal,
	)
}
