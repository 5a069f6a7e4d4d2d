package dto

import "github.com/Indrajitpadhiyar/Bagify/internal/domain"

type OrderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type OrderRequest struct {
	ShippingInfo  domain.ShippingInfo `json:"shippingInfo" validate:"required"`
	OrderItems    []OrderItemRequest  `json:"orderItems" validate:"required,min=1,dive"`
	PaymentInfo   domain.PaymentInfo  `json:"paymentInfo"`
	TaxPrice      float64             `json:"taxPrice" validate:"gte=0"`
	ShippingPrice float64             `json:"shippingPrice" validate:"gte=0"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
