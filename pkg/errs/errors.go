package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusConflict         = http.StatusConflict
	ErrBadGateway             = http.StatusBadGateway
)

var (
	ErrInternalServer              = errors.New("Internal server error")
	ErrClient                      = errors.New("Bad request")
	ErrNotLoggedIn                 = errors.New("Please login to access this resource")
	ErrInvalidToken                = errors.New("Invalid or expired token")
	ErrInvalidCredentialsEmail     = errors.New("Invalid email or password")
	ErrForbidden                   = errors.New("Forbidden access")
	ErrRoleNotAllowed              = errors.New("is not allowed to access this resource")
	ErrProductNotFound             = errors.New("Product not found with id")
	ErrOrderNotFound               = errors.New("Order not found with this id")
	ErrUserNotFound                = errors.New("User not found")
	ErrReviewNotFound              = errors.New("Review not found")
	ErrEmailAlreadyUsed            = errors.New("Email has already been used")
	ErrWrongPassword               = errors.New("Old password is incorrect")
	ErrInvalidPasswordConfirmation = errors.New("Password does not match")
	ErrExpiredToken                = errors.New("Reset password token is invalid or has been expired")
	ErrConflict                    = errors.New("Conflicting record found")
	ErrInsufficientStock           = errors.New("Insufficient stock for product")
	ErrInvalidOrderStatus          = errors.New("Invalid order status")
	ErrInvalidStatusTransition     = errors.New("Order status transition is not allowed")
	ErrOrderAlreadyDelivered       = errors.New("You have already delivered this order")
	ErrCancelDelivered             = errors.New("Delivered orders cannot be cancelled")
	ErrOrderAlreadyCancelled       = errors.New("Order is already cancelled")
	ErrNotOrderOwner               = errors.New("You can only cancel your own orders")
	ErrAlreadyInCart               = errors.New("Product already in cart")
	ErrNotInCart                   = errors.New("Product not found in cart")
	ErrAlreadyInWishlist           = errors.New("Product already in wishlist")
	ErrNotInWishlist               = errors.New("Product not found in wishlist")
	ErrEmptyOrder                  = errors.New("Order must contain at least one item")
	ErrPublishFailed               = errors.New("Failed to publish event")
)

var errorMap = map[error]int{
	ErrInternalServer:              ErrStatusInternalServer,
	ErrClient:                      ErrStatusClient,
	ErrNotLoggedIn:                 ErrStatusNotLoggedIn,
	ErrInvalidToken:                ErrStatusUnauthorized,
	ErrInvalidCredentialsEmail:     ErrStatusUnauthorized,
	ErrForbidden:                   ErrStatusNoPermission,
	ErrRoleNotAllowed:              ErrStatusNoPermission,
	ErrProductNotFound:             ErrStatusNotFound,
	ErrOrderNotFound:               ErrStatusNotFound,
	ErrUserNotFound:                ErrStatusNotFound,
	ErrReviewNotFound:              ErrStatusNotFound,
	ErrEmailAlreadyUsed:            ErrStatusEmailAlreadyUsed,
	ErrWrongPassword:               ErrStatusClient,
	ErrInvalidPasswordConfirmation: ErrStatusClient,
	ErrExpiredToken:                ErrStatusClient,
	ErrConflict:                    ErrStatusConflict,
	ErrInsufficientStock:           ErrStatusClient,
	ErrInvalidOrderStatus:          ErrStatusClient,
	ErrInvalidStatusTransition:     ErrStatusClient,
	ErrOrderAlreadyDelivered:       ErrStatusClient,
	ErrCancelDelivered:             ErrStatusClient,
	ErrOrderAlreadyCancelled:       ErrStatusClient,
	ErrNotOrderOwner:               ErrStatusNoPermission,
	ErrAlreadyInCart:               ErrStatusClient,
	ErrNotInCart:                   ErrStatusNotFound,
	ErrAlreadyInWishlist:           ErrStatusClient,
	ErrNotInWishlist:               ErrStatusNotFound,
	ErrEmptyOrder:                  ErrStatusClient,
	ErrPublishFailed:               ErrBadGateway,
}

// GetErrorStatusCode resolves the status of err, including errors that wrap
// one of the sentinels above.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}
