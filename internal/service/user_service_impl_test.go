package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	store   *fakeStore
	config  config.Config
	service UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.config = config.Config{
		FrontendURL: "http://localhost:3000/",
		JWTConfig:   config.JWTConfig{Secret: "test-secret", Expire: time.Hour},
	}
	s.service = &UserServiceImpl{
		userRepo:    s.store,
		productRepo: s.store,
		config:      s.config,
		bcryptCost:  bcrypt.MinCost,
	}
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) register(name, email, password string) dto.LoginResponse {
	resp, err := s.service.Register(context.Background(), dto.RegisterRequest{Name: name, Email: email, Password: password})
	s.Require().NoError(err)
	return resp
}

func (s *UserServiceTestSuite) userIDFromToken(token string) string {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTConfig.Secret), nil
	})
	s.Require().NoError(err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	s.Require().True(ok)
	return claims["userID"].(string)
}

func (s *UserServiceTestSuite) TestRegisterAndLogin() {
	resp := s.register("Priya Shah", " Priya@Bagify.TEST ", "s3cret-pass")
	s.Equal("priya@bagify.test", resp.User.Email)
	s.Equal(domain.RoleUser, resp.User.Role)
	s.Equal(domain.DefaultAvatar, resp.User.Avatar)
	s.NotEqual("s3cret-pass", resp.User.Password)
	s.Equal(resp.User.ID.Hex(), s.userIDFromToken(resp.Token))

	type TestCase struct {
		Name     string
		Request  dto.LoginRequest
		Expected error
	}

	testCases := []TestCase{
		{Name: "Valid credentials", Request: dto.LoginRequest{Email: "PRIYA@bagify.test", Password: "s3cret-pass"}},
		{Name: "Wrong password", Request: dto.LoginRequest{Email: "priya@bagify.test", Password: "nope"}, Expected: errs.ErrInvalidCredentialsEmail},
		{Name: "Unknown email", Request: dto.LoginRequest{Email: "ghost@bagify.test", Password: "s3cret-pass"}, Expected: errs.ErrInvalidCredentialsEmail},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			login, err := s.service.Login(context.Background(), tc.Request)
			if tc.Expected != nil {
				s.ErrorIs(err, tc.Expected)
				return
			}
			s.Require().NoError(err)
			s.Equal(resp.User.ID, login.User.ID)
		})
	}

	_, err := s.service.Register(context.Background(), dto.RegisterRequest{Name: "Priya Again", Email: "priya@bagify.test", Password: "another-pass"})
	s.ErrorIs(err, errs.ErrEmailAlreadyUsed)
}

func (s *UserServiceTestSuite) TestPasswordReset() {
	resp := s.register("Rahul Mehta", "rahul@bagify.test", "old-password")
	ctx := context.Background()

	resetURL, err := s.service.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "rahul@bagify.test"})
	s.Require().NoError(err)
	s.True(strings.HasPrefix(resetURL, "http://localhost:3000/password/reset/"))
	token := strings.TrimPrefix(resetURL, "http://localhost:3000/password/reset/")

	stored, err := s.store.GetUserByID(ctx, resp.User.ID)
	s.Require().NoError(err)
	s.Equal(utils.HashResetToken(token), stored.ResetPasswordToken)
	s.NotEqual(token, stored.ResetPasswordToken)

	_, err = s.service.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: "new-password", ConfirmPassword: "other"})
	s.ErrorIs(err, errs.ErrInvalidPasswordConfirmation)

	_, err = s.service.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "wrong", Password: "new-password", ConfirmPassword: "new-password"})
	s.ErrorIs(err, errs.ErrExpiredToken)

	reset, err := s.service.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: "new-password", ConfirmPassword: "new-password"})
	s.Require().NoError(err)
	s.NotEmpty(reset.Token)
	s.Empty(reset.User.ResetPasswordToken)

	_, err = s.service.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, Password: "newer-password", ConfirmPassword: "newer-password"})
	s.ErrorIs(err, errs.ErrExpiredToken)

	_, err = s.service.Login(ctx, dto.LoginRequest{Email: "rahul@bagify.test", Password: "new-password"})
	s.NoError(err)

	_, err = s.service.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ghost@bagify.test"})
	s.ErrorIs(err, errs.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestClearExpiredResetTokens() {
	resp := s.register("Expired User", "expired@bagify.test", "password1")
	ctx := context.Background()
	s.Require().NoError(s.store.SetResetToken(ctx, resp.User.ID, "hash", time.Now().UTC().Add(-time.Minute)))

	s.service.ClearExpiredResetTokens(ctx)

	stored, err := s.store.GetUserByID(ctx, resp.User.ID)
	s.Require().NoError(err)
	s.Empty(stored.ResetPasswordToken)
	s.Nil(stored.ResetPasswordExpire)
}

func (s *UserServiceTestSuite) TestUpdatePasswordAndProfile() {
	resp := s.register("Neha Patel", "neha@bagify.test", "first-password")
	s.register("Taken Name", "taken@bagify.test", "whatever1")
	ctx := context.Background()

	_, err := s.service.UpdatePassword(ctx, resp.User, dto.UpdatePasswordRequest{OldPassword: "wrong", NewPassword: "second-password", ConfirmPassword: "second-password"})
	s.ErrorIs(err, errs.ErrWrongPassword)

	_, err = s.service.UpdatePassword(ctx, resp.User, dto.UpdatePasswordRequest{OldPassword: "first-password", NewPassword: "second-password", ConfirmPassword: "mismatch"})
	s.ErrorIs(err, errs.ErrInvalidPasswordConfirmation)

	_, err = s.service.UpdatePassword(ctx, resp.User, dto.UpdatePasswordRequest{OldPassword: "first-password", NewPassword: "second-password", ConfirmPassword: "second-password"})
	s.Require().NoError(err)

	_, err = s.service.UpdateProfile(ctx, resp.User, dto.UpdateProfileRequest{Name: "Neha P", Email: "taken@bagify.test"})
	s.ErrorIs(err, errs.ErrEmailAlreadyUsed)

	shipping := shippingInfo()
	updated, err := s.service.UpdateProfile(ctx, resp.User, dto.UpdateProfileRequest{Name: "Neha P", Email: "Neha.P@bagify.test", ShippingInfo: &shipping})
	s.Require().NoError(err)
	s.Equal("neha.p@bagify.test", updated.Email)
	s.Equal(domain.DefaultAvatar, updated.Avatar)

	stored, err := s.store.GetUserByID(ctx, resp.User.ID)
	s.Require().NoError(err)
	s.Equal("Neha P", stored.Name)
	s.Require().NotNil(stored.ShippingInfo)
	s.Equal("Surat", stored.ShippingInfo.City)
}

func (s *UserServiceTestSuite) TestAdminUserManagement() {
	resp := s.register("Managed User", "managed@bagify.test", "password1")
	ctx := context.Background()

	s.Require().NoError(s.service.UpdateUserRole(ctx, resp.User.ID.Hex(), dto.UpdateRoleRequest{Role: domain.RoleAdmin}))
	user, err := s.service.GetUserByID(ctx, resp.User.ID.Hex())
	s.Require().NoError(err)
	s.True(user.IsAdmin())

	err = s.service.UpdateUserRole(ctx, resp.User.ID.Hex(), dto.UpdateRoleRequest{Role: "owner"})
	s.ErrorIs(err, errs.ErrClient)

	users, err := s.service.GetUsers(ctx)
	s.Require().NoError(err)
	s.Len(users, 1)

	s.Require().NoError(s.service.DeleteUser(ctx, resp.User.ID.Hex()))
	_, err = s.service.GetUserByID(ctx, resp.User.ID.Hex())
	s.ErrorIs(err, errs.ErrUserNotFound)

	err = s.service.DeleteUser(ctx, "zzz")
	s.ErrorIs(err, errs.ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestCartAndWishlist() {
	resp := s.register("Shopper One", "shopper@bagify.test", "password1")
	tote := s.store.seedProduct("Tote", 100, 5)
	duffel := s.store.seedProduct("Duffel", 200, 5)
	ctx := context.Background()

	reload := func() domain.User {
		user, err := s.store.GetUserByID(ctx, resp.User.ID)
		s.Require().NoError(err)
		return user
	}

	s.Require().NoError(s.service.AddToCart(ctx, reload(), tote.ID.Hex()))
	s.Require().NoError(s.service.AddToCart(ctx, reload(), duffel.ID.Hex()))
	s.ErrorIs(s.service.AddToCart(ctx, reload(), tote.ID.Hex()), errs.ErrAlreadyInCart)
	s.ErrorIs(s.service.AddToCart(ctx, reload(), "64b7f0c2a1b2c3d4e5f60718"), errs.ErrProductNotFound)

	s.store.deleteProduct(duffel.ID)
	cart, err := s.service.GetCart(ctx, reload())
	s.Require().NoError(err)
	s.Require().Len(cart, 1)
	s.Equal(tote.ID, cart[0].Product.ID)

	s.Require().NoError(s.service.RemoveFromCart(ctx, reload(), tote.ID.Hex()))
	s.ErrorIs(s.service.RemoveFromCart(ctx, reload(), tote.ID.Hex()), errs.ErrNotInCart)

	s.Require().NoError(s.service.AddToWishlist(ctx, reload(), tote.ID.Hex()))
	s.ErrorIs(s.service.AddToWishlist(ctx, reload(), tote.ID.Hex()), errs.ErrAlreadyInWishlist)

	wishlist, err := s.service.GetWishlist(ctx, reload())
	s.Require().NoError(err)
	s.Require().Len(wishlist, 1)
	s.Equal("Tote", wishlist[0].Name)

	s.Require().NoError(s.service.RemoveFromWishlist(ctx, reload(), tote.ID.Hex()))
	s.ErrorIs(s.service.RemoveFromWishlist(ctx, reload(), tote.ID.Hex()), errs.ErrNotInWishlist)

	wishlist, err = s.service.GetWishlist(ctx, reload())
	s.Require().NoError(err)
	s.Empty(wishlist)
}
