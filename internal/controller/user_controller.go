package controller

import (
	"net/http"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/config"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/middleware"
	"github.com/Indrajitpadhiyar/Bagify/internal/service"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserService
	config  *config.Config
}

func CreateUserController(g *echo.Group, service service.UserService, guards Guards, config *config.Config) {
	c := UserController{
		service: service,
		config:  config,
	}
	g.POST("/register", c.Register)
	g.POST("/login", c.Login)
	g.GET("/logout", c.Logout)
	g.POST("/password/forgot", c.ForgotPassword)
	g.PUT("/password/reset/:token", c.ResetPassword)

	g.GET("/me", c.GetProfile, guards.IsLoggedIn)
	g.PUT("/password/update", c.UpdatePassword, guards.IsLoggedIn)
	g.PUT("/me/update", c.UpdateProfile, guards.IsLoggedIn)

	g.POST("/cart/add", c.AddToCart, guards.IsLoggedIn)
	g.DELETE("/cart/remove/:productId", c.RemoveFromCart, guards.IsLoggedIn)
	g.GET("/cart", c.GetCart, guards.IsLoggedIn)
	g.POST("/wishlist/add", c.AddToWishlist, guards.IsLoggedIn)
	g.DELETE("/wishlist/remove/:productId", c.RemoveFromWishlist, guards.IsLoggedIn)
	g.GET("/wishlist", c.GetWishlist, guards.IsLoggedIn)

	g.GET("/admin/users", c.GetUsers, guards.IsLoggedIn, guards.Admin)
	g.GET("/admin/user/:id", c.GetUser, guards.IsLoggedIn, guards.Admin)
	g.PUT("/admin/user/:id", c.UpdateUserRole, guards.IsLoggedIn, guards.Admin)
	g.DELETE("/admin/user/:id", c.DeleteUser, guards.IsLoggedIn, guards.Admin)
}

func (c *UserController) sendToken(e echo.Context, statusCode int, message string, resp dto.LoginResponse) error {
	e.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(c.config.JWTConfig.CookieExpire),
		HttpOnly: true,
		Secure:   !c.config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})

	return response.WriteSuccessResponseWithStatus(e, statusCode, message, resp)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	if err := bindAndValidate(e, &payload, "Register"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return c.sendToken(e, http.StatusCreated, "User registered", resp)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := bindAndValidate(e, &payload, "Login"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return c.sendToken(e, http.StatusOK, "Logged in", resp)
}

func (c *UserController) Logout(e echo.Context) error {
	e.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	return response.WriteSuccessResponse(e, "Logged Out", nil)
}

func (c *UserController) ForgotPassword(e echo.Context) error {
	payload := dto.ForgotPasswordRequest{}
	if err := bindAndValidate(e, &payload, "ForgotPassword"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	if _, err := c.service.ForgotPassword(e.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Password reset link generated", dto.ForgotPasswordResponse{Email: payload.Email})
}

func (c *UserController) ResetPassword(e echo.Context) error {
	payload := dto.ResetPasswordRequest{}
	if err := bindAndValidate(e, &payload, "ResetPassword"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	payload.Token = e.Param("token")
	resp, err := c.service.ResetPassword(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return c.sendToken(e, http.StatusOK, "Password reset successfully", resp)
}

func (c *UserController) GetProfile(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", user)
}

func (c *UserController) UpdatePassword(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdatePasswordRequest{}
	if err := bindAndValidate(e, &payload, "UpdatePassword"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	resp, err := c.service.UpdatePassword(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return c.sendToken(e, http.StatusOK, "Password updated", resp)
}

func (c *UserController) UpdateProfile(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdateProfileRequest{}
	if err := bindAndValidate(e, &payload, "UpdateProfile"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	updated, err := c.service.UpdateProfile(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Profile updated", updated)
}

func (c *UserController) AddToCart(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ProductRefRequest{}
	if err := bindAndValidate(e, &payload, "AddToCart"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	if err := c.service.AddToCart(e.Request().Context(), user, payload.ProductID); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product added to cart", nil)
}

func (c *UserController) RemoveFromCart(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.service.RemoveFromCart(e.Request().Context(), user, e.Param("productId")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product removed from cart", nil)
}

func (c *UserController) GetCart(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	cart, err := c.service.GetCart(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", cart)
}

func (c *UserController) AddToWishlist(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ProductRefRequest{}
	if err := bindAndValidate(e, &payload, "AddToWishlist"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	if err := c.service.AddToWishlist(e.Request().Context(), user, payload.ProductID); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product added to wishlist", nil)
}

func (c *UserController) RemoveFromWishlist(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.service.RemoveFromWishlist(e.Request().Context(), user, e.Param("productId")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product removed from wishlist", nil)
}

func (c *UserController) GetWishlist(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	wishlist, err := c.service.GetWishlist(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", wishlist)
}

func (c *UserController) GetUsers(e echo.Context) error {
	users, err := c.service.GetUsers(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", users)
}

func (c *UserController) GetUser(e echo.Context) error {
	user, err := c.service.GetUserByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", user)
}

func (c *UserController) UpdateUserRole(e echo.Context) error {
	payload := dto.UpdateRoleRequest{}
	if err := bindAndValidate(e, &payload, "UpdateUserRole"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	if err := c.service.UpdateUserRole(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "User role updated", nil)
}

func (c *UserController) DeleteUser(e echo.Context) error {
	if err := c.service.DeleteUser(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "User deleted successfully", nil)
}
