package dto

import "github.com/Indrajitpadhiyar/Bagify/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type ForgotPasswordResponse struct {
	Email string `json:"email"`
}

type CartItemResponse struct {
	Product domain.Product `json:"productId"`
}
