package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventNewOrder          = "new_order"
	EventOrderStatusUpdate = "order_status_update"
)

// OrderEvent is an outbox record written in the same transaction as the order
// change it describes. Room is empty for broadcast events.
type OrderEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventID     string             `bson:"eventId" json:"eventId"`
	EventType   string             `bson:"eventType" json:"eventType"`
	OrderID     primitive.ObjectID `bson:"orderId" json:"orderId"`
	Room        string             `bson:"room" json:"room"`
	Payload     []byte             `bson:"payload" json:"payload"`
	Delivered   bool               `bson:"delivered" json:"delivered"`
	Attempts    int                `bson:"attempts" json:"attempts"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	DeliveredAt *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
}
