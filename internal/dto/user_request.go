package dto

import "github.com/Indrajitpadhiyar/Bagify/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"-"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type UpdateProfileRequest struct {
	Name         string               `json:"name" validate:"required,min=4,max=30"`
	Email        string               `json:"email" validate:"required,email"`
	Avatar       *domain.Image        `json:"avatar"`
	ShippingInfo *domain.ShippingInfo `json:"shippingInfo"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type ProductRefRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type BannerRequest struct {
	BannerTitle    string `json:"bannerTitle" validate:"required"`
	BannerSubtitle string `json:"bannerSubtitle"`
	BannerLink     string `json:"bannerLink"`
	IsActive       *bool  `json:"isActive"`
}
