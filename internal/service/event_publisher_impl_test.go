package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	circuitbreaker "github.com/Indrajitpadhiyar/Bagify/internal/infrastructure/circuit-breaker"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// flakyWriter fails the next `failures` writes, as a writer does while the
// broker connection is down, then accepts everything.
type flakyWriter struct {
	mu       sync.Mutex
	failures int
	written  []kafka.Message
}

func (w *flakyWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failures > 0 {
		w.failures--
		return errors.New("write tcp: broken pipe")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *flakyWriter) Written() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.written...)
}

type KafkaEventPublisherTestSuite struct {
	suite.Suite
	store  *fakeStore
	writer *flakyWriter
	relay  EventRelay
}

func (s *KafkaEventPublisherTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.writer = &flakyWriter{}
	publisher := CreateKafkaEventPublisher(s.writer, circuitbreaker.CreateCircuitBreaker("order-events-test"))
	s.relay = CreateEventRelay(s.store, publisher, config.Config{
		OutboxConfig: config.OutboxConfig{BatchSize: 10, Retention: time.Hour},
	})
}

func TestKafkaEventPublisher(t *testing.T) {
	suite.Run(t, new(KafkaEventPublisherTestSuite))
}

func (s *KafkaEventPublisherTestSuite) addEvent(id string, orderID primitive.ObjectID) {
	s.Require().NoError(s.store.AddEvent(context.Background(), domain.OrderEvent{
		EventID:   id,
		EventType: domain.EventOrderStatusUpdate,
		OrderID:   orderID,
		Room:      orderID.Hex(),
		Payload:   []byte(`{"status":"Shipped"}`),
		CreatedAt: time.Now().UTC(),
	}))
}

func (s *KafkaEventPublisherTestSuite) TestWritesKeyedEnvelope() {
	orderID := primitive.NewObjectID()
	s.addEvent("e1", orderID)

	delivered, err := s.relay.RelayPendingEvents(context.Background())
	s.Require().NoError(err)
	s.Equal(1, delivered)

	written := s.writer.Written()
	s.Require().Len(written, 1)
	s.Equal(orderID.Hex(), string(written[0].Key))

	var msg dto.KafkaMessage
	s.Require().NoError(json.Unmarshal(written[0].Value, &msg))
	s.Equal("e1", msg.EventID)
	s.Equal(domain.EventOrderStatusUpdate, msg.EventType)
	s.Equal(orderID.Hex(), msg.Room)
	s.JSONEq(`{"status":"Shipped"}`, string(msg.Data))
}

func (s *KafkaEventPublisherTestSuite) TestRelayDrainsAfterBrokerRecovers() {
	orderID := primitive.NewObjectID()
	s.addEvent("e1", orderID)
	s.addEvent("e2", orderID)
	s.writer.failures = 2

	for attempt := 1; attempt <= 2; attempt++ {
		delivered, err := s.relay.RelayPendingEvents(context.Background())
		s.ErrorIs(err, errs.ErrPublishFailed)
		s.Zero(delivered)
		s.Equal(attempt, s.store.allEvents()[0].Attempts)
	}

	delivered, err := s.relay.RelayPendingEvents(context.Background())
	s.Require().NoError(err)
	s.Equal(2, delivered)

	written := s.writer.Written()
	s.Require().Len(written, 2)
	for _, event := range s.store.allEvents() {
		s.True(event.Delivered)
	}
}
