package service

import (
	"context"
	"sync"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/metrics"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
	"github.com/rs/zerolog/log"
)

// EventRelayImpl drains the order event outbox. It runs on demand after each
// committed order change and on a schedule to pick up anything left behind.
type EventRelayImpl struct {
	repo      repository.EventRepository
	publisher EventPublisher
	batchSize int64
	retention time.Duration
	mu        sync.Mutex
	trigger   chan struct{}
}

func CreateEventRelay(repo repository.EventRepository, publisher EventPublisher, config config.Config) EventRelay {
	batchSize := config.OutboxConfig.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &EventRelayImpl{
		repo:      repo,
		publisher: publisher,
		batchSize: batchSize,
		retention: config.OutboxConfig.Retention,
		trigger:   make(chan struct{}, 1),
	}
}

func (r *EventRelayImpl) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

func (r *EventRelayImpl) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.trigger:
			r.RelayPendingEvents(ctx)
		}
	}
}

// RelayPendingEvents publishes pending events oldest first. A batch stops at
// the first failure so that events for one order are never reordered.
func (r *EventRelayImpl) RelayPendingEvents(ctx context.Context) (delivered int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := r.repo.GetPendingEvents(ctx, r.batchSize)
	if err != nil {
		return
	}

	for _, event := range events {
		if err = r.publisher.Publish(ctx, event); err != nil {
			metrics.OutboxPublishFailures.Inc()
			log.Error().Err(err).Str("component", "RelayPendingEvents").Str("event_id", event.EventID).
				Int("attempts", event.Attempts+1).Msg("failed to publish order event")

			if incErr := r.repo.IncrementEventAttempts(ctx, event.ID); incErr != nil {
				log.Error().Err(incErr).Str("component", "RelayPendingEvents").Msg("")
			}
			return
		}

		if err = r.repo.MarkEventDelivered(ctx, event.ID, time.Now().UTC()); err != nil {
			return
		}

		metrics.OutboxEventsPublished.WithLabelValues(event.EventType).Inc()
		delivered++
	}

	return delivered, nil
}

func (r *EventRelayImpl) PurgeDeliveredEvents(ctx context.Context) {
	if r.retention <= 0 {
		return
	}

	count, err := r.repo.DeleteDeliveredEventsBefore(ctx, time.Now().UTC().Add(-r.retention))
	if err != nil {
		return
	}

	if count > 0 {
		log.Info().Str("component", "PurgeDeliveredEvents").Int64("count", count).Msg("purged delivered order events")
	}
}
