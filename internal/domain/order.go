package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Image    string             `bson:"image" json:"image"`
}

type PaymentInfo struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
}

type TimelineEntry struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Message   string      `bson:"message" json:"message"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ShippingInfo  ShippingInfo       `bson:"shippingInfo" json:"shippingInfo"`
	OrderItems    []OrderItem        `bson:"orderItems" json:"orderItems"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	PaymentInfo   PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
	ItemsPrice    float64            `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice      float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice float64            `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	OrderStatus   OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	Timeline      []TimelineEntry    `bson:"timeline" json:"timeline"`
	DeliveredAt   *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt   *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// OrderStatusChange is a compare-and-swap status write: it applies only while
// the stored order is still in From.
type OrderStatusChange struct {
	OrderID     primitive.ObjectID
	From        OrderStatus
	To          OrderStatus
	Entry       TimelineEntry
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Apply mirrors the stored update on an in-memory order.
func (o *Order) Apply(change OrderStatusChange) {
	o.OrderStatus = change.To
	o.Timeline = append(o.Timeline, change.Entry)
	if change.DeliveredAt != nil {
		o.DeliveredAt = change.DeliveredAt
	}
	if change.CancelledAt != nil {
		o.CancelledAt = change.CancelledAt
	}
}
