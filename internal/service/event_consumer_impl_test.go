package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func kafkaMessage(t *testing.T, eventID, eventType, room string) []byte {
	msg, err := json.Marshal(dto.KafkaMessage{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   primitive.NewObjectID().Hex(),
		Room:      room,
		Data:      json.RawMessage(`{"status":"Shipped"}`),
	})
	require.NoError(t, err)
	return msg
}

func TestKafkaEventConsumerHandleMessage(t *testing.T) {
	emitter := &recordingEmitter{}
	consumer := CreateKafkaEventConsumer(nil, emitter).(*KafkaEventConsumer)

	consumer.handleMessage(kafkaMessage(t, "01HZX1", domain.EventNewOrder, ""))
	consumer.handleMessage(kafkaMessage(t, "01HZX2", domain.EventOrderStatusUpdate, "room-1"))
	consumer.handleMessage(kafkaMessage(t, "01HZX2", domain.EventOrderStatusUpdate, "room-1"))
	consumer.handleMessage([]byte("not json"))
	consumer.handleMessage(kafkaMessage(t, "01HZX3", "mystery", ""))

	calls := emitter.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, emitted{Room: "", Event: domain.EventNewOrder, Data: `{"status":"Shipped"}`}, calls[0])
	assert.Equal(t, emitted{Room: "room-1", Event: domain.EventOrderStatusUpdate, Data: `{"status":"Shipped"}`}, calls[1])
}

func TestKafkaEventConsumerForgetsOldIDs(t *testing.T) {
	consumer := CreateKafkaEventConsumer(nil, &recordingEmitter{}).(*KafkaEventConsumer)

	assert.False(t, consumer.markSeen("first"))
	assert.True(t, consumer.markSeen("first"))

	for i := 0; i < recentEventWindow; i++ {
		consumer.markSeen(fmt.Sprintf("id-%d", i))
	}

	assert.Len(t, consumer.seen, recentEventWindow)
	assert.False(t, consumer.markSeen("first"))
	assert.False(t, consumer.markSeen(""))
}

func TestHubEventPublisher(t *testing.T) {
	emitter := &recordingEmitter{}
	publisher := CreateHubEventPublisher(emitter)
	orderID := primitive.NewObjectID()

	err := publisher.Publish(context.Background(), domain.OrderEvent{
		EventType: domain.EventOrderStatusUpdate,
		OrderID:   orderID,
		Room:      orderID.Hex(),
		Payload:   []byte(`{"status":"Delivered"}`),
	})
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), domain.OrderEvent{EventType: "unknown"})
	assert.Error(t, err)

	calls := emitter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, orderID.Hex(), calls[0].Room)
	assert.Equal(t, `{"status":"Delivered"}`, calls[0].Data)
}
