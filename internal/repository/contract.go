package repository

import (
	"context"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionManager runs fn inside a multi-document transaction. Repository
// calls made with the ctx handed to fn join that transaction.
type TransactionManager interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, param pkgdto.Filter) (count int64, err error)
	GetAllProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (product domain.Product, err error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	UpdateProductReviews(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error)
	// DecrementStock reports false when the product is missing or holds
	// fewer than quantity units. Stock never goes below zero.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (ok bool, err error)
	// IncrementStock reports false when the product no longer exists.
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (ok bool, err error)
}

type OrderRepository interface {
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (order domain.Order, err error)
	GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error)
	GetOrders(ctx context.Context) (data []domain.Order, err error)
	// UpdateOrderStatus fails with errs.ErrConflict when the stored status is
	// no longer change.From.
	UpdateOrderStatus(ctx context.Context, change domain.OrderStatusChange) (err error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error)
	GetUserByEmail(ctx context.Context, email string) (user domain.User, err error)
	GetUsers(ctx context.Context) (data []domain.User, err error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.User, err error)
	UpdateProfile(ctx context.Context, data domain.User) (err error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) (err error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (err error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (err error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) (err error)
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (user domain.User, err error)
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (count int64, err error)
	AddToCart(ctx context.Context, userID, productID primitive.ObjectID) (err error)
	RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (err error)
	AddToWishlist(ctx context.Context, userID, productID primitive.ObjectID) (err error)
	RemoveFromWishlist(ctx context.Context, userID, productID primitive.ObjectID) (err error)
}

type BannerRepository interface {
	// GetOrCreateBanner returns the singleton banner, inserting def when
	// none exists yet.
	GetOrCreateBanner(ctx context.Context, def domain.Banner) (banner domain.Banner, err error)
	UpsertBanner(ctx context.Context, data domain.Banner) (banner domain.Banner, err error)
}

type EventRepository interface {
	AddEvent(ctx context.Context, data domain.OrderEvent) (err error)
	GetPendingEvents(ctx context.Context, limit int64) (data []domain.OrderEvent, err error)
	MarkEventDelivered(ctx context.Context, id primitive.ObjectID, at time.Time) (err error)
	IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) (err error)
	DeleteDeliveredEventsBefore(ctx context.Context, before time.Time) (count int64, err error)
}
