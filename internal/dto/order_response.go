package dto

import (
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
)

type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse is an order with its owner populated. AllowedStatuses is
// only filled for admins and lists the statuses the order may move to next.
type OrderResponse struct {
	domain.Order
	User            *UserSummary         `json:"user"`
	AllowedStatuses []domain.OrderStatus `json:"allowedStatuses,omitempty"`
}

type AdminOrdersResponse struct {
	TotalAmount float64         `json:"totalAmount"`
	TotalOrders int             `json:"totalOrders"`
	Orders      []OrderResponse `json:"orders"`
}

// NewOrderNotification is broadcast to every socket, so it carries no
// shipping, contact or payment details.
type NewOrderNotification struct {
	ID          string             `json:"_id"`
	OrderStatus domain.OrderStatus `json:"orderStatus"`
	TotalPrice  float64            `json:"totalPrice"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func NewOrderNotificationFrom(order domain.Order) NewOrderNotification {
	return NewOrderNotification{
		ID:          order.ID.Hex(),
		OrderStatus: order.OrderStatus,
		TotalPrice:  order.TotalPrice,
		CreatedAt:   order.CreatedAt,
	}
}

type OrderStatusUpdate struct {
	Status   domain.OrderStatus     `json:"status"`
	Timeline []domain.TimelineEntry `json:"timeline"`
}
