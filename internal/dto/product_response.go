package dto

import "github.com/Indrajitpadhiyar/Bagify/internal/domain"

type ProductsResponse struct {
	Products              []domain.Product `json:"products"`
	ProductsCount         int64            `json:"productsCount"`
	ResultPerPage         int              `json:"resultPerPage"`
	FilteredProductsCount int64            `json:"filteredProductsCount"`
}
