package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered on the default registry, which echoprometheus.NewHandler serves.
var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagify_orders_placed_total",
		Help: "Orders committed by order placement.",
	})

	StockReservationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagify_stock_reservation_failures_total",
		Help: "Order placements rejected for insufficient stock.",
	})

	OrderStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bagify_order_status_transitions_total",
		Help: "Committed order status transitions.",
	}, []string{"from", "to"})

	OutboxEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bagify_outbox_events_published_total",
		Help: "Outbox events handed to the publisher.",
	}, []string{"event_type"})

	OutboxPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagify_outbox_publish_failures_total",
		Help: "Failed outbox publish attempts.",
	})

	WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bagify_websocket_connections",
		Help: "Open notification websocket connections.",
	})

	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bagify_notifications_dropped_total",
		Help: "Notifications dropped because a client could not keep up.",
	})
)
