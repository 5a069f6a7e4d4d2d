package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const kafkaWriteTimeout = 10 * time.Second

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaEventPublisher writes outbox events to the order event topic, keyed by
// order id. Writes go through a circuit breaker so an unreachable broker
// fails fast until it recovers.
type KafkaEventPublisher struct {
	kafkaProducer MessageWriter
	cb            *gobreaker.CircuitBreaker[[]byte]
}

func CreateKafkaEventPublisher(kafkaProducer MessageWriter, cb *gobreaker.CircuitBreaker[[]byte]) EventPublisher {
	return &KafkaEventPublisher{kafkaProducer: kafkaProducer, cb: cb}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventID:   event.EventID,
		EventType: event.EventType,
		OrderID:   event.OrderID.Hex(),
		Room:      event.Room,
		Data:      json.RawMessage(event.Payload),
	})
	if err != nil {
		return err
	}

	_, err = p.cb.Execute(func() ([]byte, error) {
		return jsonMsg, p.writeKafkaMessageWithKey(ctx, jsonMsg, event.OrderID.Hex())
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPublishFailed, err)
	}

	return nil
}

func (p *KafkaEventPublisher) writeKafkaMessageWithKey(ctx context.Context, msg []byte, key string) error {
	ctx, cancel := context.WithTimeout(ctx, kafkaWriteTimeout)
	defer cancel()

	return p.kafkaProducer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(key),
			Value: msg,
		},
	)
}

// HubEventPublisher delivers outbox events straight to the local websocket
// hub. It is used when no broker is configured.
type HubEventPublisher struct {
	emitter Emitter
}

func CreateHubEventPublisher(emitter Emitter) EventPublisher {
	return &HubEventPublisher{emitter: emitter}
}

func (p *HubEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	return emit(p.emitter, event.EventType, event.Room, event.Payload)
}

func emit(emitter Emitter, eventType string, room string, data json.RawMessage) error {
	switch eventType {
	case domain.EventNewOrder:
		return emitter.Broadcast(eventType, data)
	case domain.EventOrderStatusUpdate:
		return emitter.EmitToRoom(room, eventType, data)
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}
}
