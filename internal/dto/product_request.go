package dto

import "github.com/Indrajitpadhiyar/Bagify/internal/domain"

type ProductRequest struct {
	ID          string         `json:"-"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	Category    string         `json:"category" validate:"required"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Images      []domain.Image `json:"images" validate:"dive"`
}

type ReviewRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment"`
}
