package service

import (
	"context"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
)

type ProductService interface {
	AddProduct(ctx context.Context, user domain.User, data dto.ProductRequest) (product domain.Product, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (resp dto.ProductsResponse, err error)
	GetAllProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductDetails(ctx context.Context, id string) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	AddReview(ctx context.Context, user domain.User, data dto.ReviewRequest) (err error)
	GetReviews(ctx context.Context, productID string) (reviews []domain.Review, err error)
	DeleteReview(ctx context.Context, productID string, reviewID string) (err error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, user domain.User, data dto.OrderRequest) (order domain.Order, err error)
	GetOrder(ctx context.Context, user domain.User, id string) (order dto.OrderResponse, err error)
	GetMyOrders(ctx context.Context, user domain.User) (data []domain.Order, err error)
	GetAllOrders(ctx context.Context) (resp dto.AdminOrdersResponse, err error)
	UpdateOrderStatus(ctx context.Context, id string, data dto.OrderStatusRequest) (order domain.Order, err error)
	CancelOrder(ctx context.Context, user domain.User, id string) (order domain.Order, err error)
	DeleteOrder(ctx context.Context, id string) (err error)
}

type UserService interface {
	Register(ctx context.Context, data dto.RegisterRequest) (resp dto.LoginResponse, err error)
	Login(ctx context.Context, data dto.LoginRequest) (resp dto.LoginResponse, err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	ForgotPassword(ctx context.Context, data dto.ForgotPasswordRequest) (resetURL string, err error)
	ResetPassword(ctx context.Context, data dto.ResetPasswordRequest) (resp dto.LoginResponse, err error)
	UpdatePassword(ctx context.Context, user domain.User, data dto.UpdatePasswordRequest) (resp dto.LoginResponse, err error)
	UpdateProfile(ctx context.Context, user domain.User, data dto.UpdateProfileRequest) (updated domain.User, err error)
	GetUsers(ctx context.Context) (data []domain.User, err error)
	UpdateUserRole(ctx context.Context, id string, data dto.UpdateRoleRequest) (err error)
	DeleteUser(ctx context.Context, id string) (err error)
	AddToCart(ctx context.Context, user domain.User, productID string) (err error)
	RemoveFromCart(ctx context.Context, user domain.User, productID string) (err error)
	GetCart(ctx context.Context, user domain.User) (items []dto.CartItemResponse, err error)
	AddToWishlist(ctx context.Context, user domain.User, productID string) (err error)
	RemoveFromWishlist(ctx context.Context, user domain.User, productID string) (err error)
	GetWishlist(ctx context.Context, user domain.User) (data []domain.Product, err error)
	ClearExpiredResetTokens(ctx context.Context)
}

type BannerService interface {
	GetBanner(ctx context.Context) (banner domain.Banner, err error)
	UpdateBanner(ctx context.Context, data dto.BannerRequest) (banner domain.Banner, err error)
}

// EventTrigger asks the outbox relay to run soon. It never blocks.
type EventTrigger interface {
	Trigger()
}

type EventRelay interface {
	EventTrigger
	Run(ctx context.Context)
	RelayPendingEvents(ctx context.Context) (delivered int, err error)
	PurgeDeliveredEvents(ctx context.Context)
}

// EventPublisher hands one outbox event to its transport.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}

// Emitter pushes notifications to connected clients.
type Emitter interface {
	Broadcast(event string, data interface{}) error
	EmitToRoom(room, event string, data interface{}) error
}

type EventConsumer interface {
	ConsumeEvent(ctx context.Context)
}
