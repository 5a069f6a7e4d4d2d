package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 15 * time.Minute

type UserServiceImpl struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	config      config.Config
	bcryptCost  int
}

func CreateUserService(userRepo repository.UserRepository, productRepo repository.ProductRepository, config config.Config) UserService {
	return &UserServiceImpl{userRepo: userRepo, productRepo: productRepo, config: config, bcryptCost: bcrypt.DefaultCost}
}

func (s *UserServiceImpl) Register(ctx context.Context, data dto.RegisterRequest) (resp dto.LoginResponse, err error) {
	email := normalizeEmail(data.Email)

	_, err = s.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return resp, errs.ErrEmailAlreadyUsed
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return resp, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), s.bcryptCost)
	if err != nil {
		return resp, err
	}

	user := domain.User{
		Name:      data.Name,
		Email:     email,
		Password:  string(hash),
		Avatar:    domain.DefaultAvatar,
		Role:      domain.RoleUser,
		Cart:      []domain.CartItem{},
		Wishlist:  []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	}

	user.ID, err = s.userRepo.AddUser(ctx, user)
	if err != nil {
		return resp, err
	}

	return s.issueToken(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, data dto.LoginRequest) (resp dto.LoginResponse, err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(data.Email))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return resp, errs.ErrInvalidCredentialsEmail
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.Password))
	if err != nil {
		log.Ctx(ctx).Warn().Str("component", "Login").Str("user_id", user.ID.Hex()).Msg("wrong password")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	return s.issueToken(user)
}

func (s *UserServiceImpl) issueToken(user domain.User) (resp dto.LoginResponse, err error) {
	token, err := utils.CreateJWTToken(user.ID.Hex(), user.Name, s.config.JWTConfig.Secret, s.config.JWTConfig.Expire)
	if err != nil {
		return
	}

	return dto.LoginResponse{Token: token, User: user}, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	userID, err := utils.ParseObjectID(id, errs.ErrUserNotFound)
	if err != nil {
		return
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// ForgotPassword stores a hashed reset token and logs the reset link. Mail
// delivery is not wired up, so the link is returned to the caller only for
// tests and never exposed over HTTP.
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, data dto.ForgotPasswordRequest) (resetURL string, err error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(data.Email))
	if err != nil {
		return
	}

	token, hash, err := utils.GenerateResetToken()
	if err != nil {
		return
	}

	if err = s.userRepo.SetResetToken(ctx, user.ID, hash, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		return
	}

	resetURL = fmt.Sprintf("%s/password/reset/%s", strings.TrimRight(s.config.FrontendURL, "/"), token)
	log.Ctx(ctx).Info().Str("component", "ForgotPassword").Str("user_id", user.ID.Hex()).
		Str("reset_url", resetURL).Msg("password reset requested")

	return resetURL, nil
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, data dto.ResetPasswordRequest) (resp dto.LoginResponse, err error) {
	if data.Password != data.ConfirmPassword {
		return resp, errs.ErrInvalidPasswordConfirmation
	}

	user, err := s.userRepo.GetUserByResetToken(ctx, utils.HashResetToken(data.Token), time.Now().UTC())
	if err != nil {
		return
	}

	if err = s.setPassword(ctx, &user, data.Password); err != nil {
		return
	}

	return s.issueToken(user)
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, user domain.User, data dto.UpdatePasswordRequest) (resp dto.LoginResponse, err error) {
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(data.OldPassword)); err != nil {
		return resp, errs.ErrWrongPassword
	}

	if data.NewPassword != data.ConfirmPassword {
		return resp, errs.ErrInvalidPasswordConfirmation
	}

	if err = s.setPassword(ctx, &user, data.NewPassword); err != nil {
		return
	}

	return s.issueToken(user)
}

func (s *UserServiceImpl) setPassword(ctx context.Context, user *domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	user.Password = string(hash)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	return nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, user domain.User, data dto.UpdateProfileRequest) (updated domain.User, err error) {
	email := normalizeEmail(data.Email)
	if email != user.Email {
		existing, err := s.userRepo.GetUserByEmail(ctx, email)
		if err == nil && existing.ID != user.ID {
			return updated, errs.ErrEmailAlreadyUsed
		}
		if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
			return updated, err
		}
	}

	user.Name = data.Name
	user.Email = email
	if data.Avatar != nil {
		user.Avatar = *data.Avatar
	}
	if data.ShippingInfo != nil {
		user.ShippingInfo = data.ShippingInfo
	}

	if err = s.userRepo.UpdateProfile(ctx, user); err != nil {
		return
	}

	return user, nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) (data []domain.User, err error) {
	return s.userRepo.GetUsers(ctx)
}

func (s *UserServiceImpl) UpdateUserRole(ctx context.Context, id string, data dto.UpdateRoleRequest) (err error) {
	if data.Role != domain.RoleUser && data.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", errs.ErrClient, data.Role)
	}

	userID, err := utils.ParseObjectID(id, errs.ErrUserNotFound)
	if err != nil {
		return
	}

	return s.userRepo.UpdateRole(ctx, userID, data.Role)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (err error) {
	userID, err := utils.ParseObjectID(id, errs.ErrUserNotFound)
	if err != nil {
		return
	}

	return s.userRepo.DeleteUser(ctx, userID)
}

func (s *UserServiceImpl) AddToCart(ctx context.Context, user domain.User, productID string) (err error) {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return
	}

	if user.HasInCart(product.ID) {
		return errs.ErrAlreadyInCart
	}

	return s.userRepo.AddToCart(ctx, user.ID, product.ID)
}

func (s *UserServiceImpl) RemoveFromCart(ctx context.Context, user domain.User, productID string) (err error) {
	pid, err := utils.ParseObjectID(productID, errs.ErrNotInCart)
	if err != nil {
		return
	}

	if !user.HasInCart(pid) {
		return errs.ErrNotInCart
	}

	return s.userRepo.RemoveFromCart(ctx, user.ID, pid)
}

// GetCart returns the cart with products populated. Lines whose product was
// deleted are left out.
func (s *UserServiceImpl) GetCart(ctx context.Context, user domain.User) (items []dto.CartItemResponse, err error) {
	ids := make([]primitive.ObjectID, len(user.Cart))
	for i, item := range user.Cart {
		ids[i] = item.ProductID
	}

	products, err := s.productsInOrder(ctx, ids)
	if err != nil {
		return
	}

	items = make([]dto.CartItemResponse, 0, len(products))
	for _, product := range products {
		items = append(items, dto.CartItemResponse{Product: product})
	}

	return items, nil
}

func (s *UserServiceImpl) AddToWishlist(ctx context.Context, user domain.User, productID string) (err error) {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return
	}

	if user.HasInWishlist(product.ID) {
		return errs.ErrAlreadyInWishlist
	}

	return s.userRepo.AddToWishlist(ctx, user.ID, product.ID)
}

func (s *UserServiceImpl) RemoveFromWishlist(ctx context.Context, user domain.User, productID string) (err error) {
	pid, err := utils.ParseObjectID(productID, errs.ErrNotInWishlist)
	if err != nil {
		return
	}

	if !user.HasInWishlist(pid) {
		return errs.ErrNotInWishlist
	}

	return s.userRepo.RemoveFromWishlist(ctx, user.ID, pid)
}

func (s *UserServiceImpl) GetWishlist(ctx context.Context, user domain.User) (data []domain.Product, err error) {
	return s.productsInOrder(ctx, user.Wishlist)
}

func (s *UserServiceImpl) ClearExpiredResetTokens(ctx context.Context) {
	count, err := s.userRepo.ClearExpiredResetTokens(ctx, time.Now().UTC())
	if err != nil {
		return
	}

	if count > 0 {
		log.Info().Str("component", "ClearExpiredResetTokens").Int64("count", count).Msg("cleared expired reset tokens")
	}
}

func (s *UserServiceImpl) lookupProduct(ctx context.Context, productID string) (product domain.Product, err error) {
	pid, err := utils.ParseObjectID(productID, errs.ErrProductNotFound)
	if err != nil {
		return
	}

	product, err = s.productRepo.GetProductByID(ctx, pid)
	if errors.Is(err, errs.ErrProductNotFound) {
		return product, fmt.Errorf("%w: %s", errs.ErrProductNotFound, productID)
	}

	return
}

func (s *UserServiceImpl) productsInOrder(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error) {
	data = []domain.Product{}
	if len(ids) == 0 {
		return data, nil
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return
	}

	byID := make(map[primitive.ObjectID]domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	for _, id := range ids {
		if product, ok := byID[id]; ok {
			data = append(data, product)
		}
	}

	return data, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
