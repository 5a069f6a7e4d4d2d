package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var DefaultAvatar = Image{
	PublicID: "avatars/default",
	URL:      "https://res.cloudinary.com/demo/image/upload/avatars/default.png",
}

type ShippingInfo struct {
	Address string `bson:"address" json:"address" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	Country string `bson:"country" json:"country" validate:"required"`
	PinCode string `bson:"pinCode" json:"pinCode" validate:"required"`
	PhoneNo string `bson:"phoneNo" json:"phoneNo" validate:"required"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name                string               `bson:"name" json:"name"`
	Email               string               `bson:"email" json:"email"`
	Password            string               `bson:"password" json:"-"`
	Avatar              Image                `bson:"avatar" json:"avatar"`
	Role                string               `bson:"role" json:"role"`
	ShippingInfo        *ShippingInfo        `bson:"shippingInfo,omitempty" json:"shippingInfo,omitempty"`
	ResetPasswordToken  string               `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time           `bson:"resetPasswordExpire,omitempty" json:"-"`
	Cart                []CartItem           `bson:"cart" json:"cart"`
	Wishlist            []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasInCart(productID primitive.ObjectID) bool {
	for _, item := range u.Cart {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

func (u *User) HasInWishlist(productID primitive.ObjectID) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}
