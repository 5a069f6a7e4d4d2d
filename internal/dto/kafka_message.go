package dto

import "encoding/json"

type KafkaMessage struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	OrderID   string          `json:"order_id"`
	Room      string          `json:"room,omitempty"`
	Data      json.RawMessage `json:"data"`
}
