package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const recentEventWindow = 1024

// KafkaEventConsumer fans order events from the broker out to the local hub.
// The outbox may publish an event twice, so recently seen ids are skipped.
type KafkaEventConsumer struct {
	kafkaReader *kafka.Reader
	emitter     Emitter
	seen        map[string]struct{}
	order       []string
}

func CreateKafkaEventConsumer(kafkaReader *kafka.Reader, emitter Emitter) EventConsumer {
	return &KafkaEventConsumer{
		kafkaReader: kafkaReader,
		emitter:     emitter,
		seen:        make(map[string]struct{}, recentEventWindow),
	}
}

func (c *KafkaEventConsumer) ConsumeEvent(ctx context.Context) {
	for {
		msg, err := c.kafkaReader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		c.handleMessage(msg.Value)
	}
}

func (c *KafkaEventConsumer) handleMessage(value []byte) {
	var receivedMsg dto.KafkaMessage
	if err := json.Unmarshal(value, &receivedMsg); err != nil {
		log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
		return
	}

	if c.markSeen(receivedMsg.EventID) {
		log.Debug().Str("component", "ConsumeEvent").Str("event_id", receivedMsg.EventID).Msg("duplicate event skipped")
		return
	}

	if err := emit(c.emitter, receivedMsg.EventType, receivedMsg.Room, receivedMsg.Data); err != nil {
		log.Error().Err(err).Str("component", "ConsumeEvent").Str("event_id", receivedMsg.EventID).Msg("")
	}
}

// markSeen reports whether id was already handled and remembers it otherwise.
func (c *KafkaEventConsumer) markSeen(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := c.seen[id]; ok {
		return true
	}

	if len(c.order) == recentEventWindow {
		delete(c.seen, c.order[0])
		c.order = c.order[1:]
	}
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)

	return false
}
