package domain

import (
	"fmt"

	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// orderTransitions lists every status an order may move to. Skipping forward
// (Processing to Delivered) is allowed, moving backward is not.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidOrderStatus, s)
	}
	return status, nil
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses an admin may pick for an order in s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := make([]OrderStatus, len(orderTransitions[s]))
	copy(next, orderTransitions[s])
	return next
}
