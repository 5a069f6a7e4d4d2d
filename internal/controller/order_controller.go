package controller

import (
	"net/http"

	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/service"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/labstack/echo/v4"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService, guards Guards) {
	c := OrderController{
		service: service,
	}
	g.POST("/order/new", c.PlaceOrder, guards.IsLoggedIn)
	g.GET("/order/:id", c.GetOrder, guards.IsLoggedIn)
	g.GET("/orders/me", c.GetMyOrders, guards.IsLoggedIn)
	g.DELETE("/order/cancel/:id", c.CancelOrder, guards.IsLoggedIn)
	g.PUT("/order/cancel/:id", c.CancelOrder, guards.IsLoggedIn)

	g.GET("/admin/orders", c.GetAllOrders, guards.IsLoggedIn, guards.Admin)
	g.PUT("/admin/order/:id", c.UpdateOrderStatus, guards.IsLoggedIn, guards.Admin)
	g.DELETE("/admin/order/:id", c.DeleteOrder, guards.IsLoggedIn, guards.Admin)
}

func (c *OrderController) PlaceOrder(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.OrderRequest{}
	if err := bindAndValidate(e, &payload, "PlaceOrder"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	order, err := c.service.PlaceOrder(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponseWithStatus(e, http.StatusCreated, "Order placed successfully", order)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	order, err := c.service.GetOrder(e.Request().Context(), user, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", order)
}

func (c *OrderController) GetMyOrders(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	orders, err := c.service.GetMyOrders(e.Request().Context(), user)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", orders)
}

func (c *OrderController) CancelOrder(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	order, err := c.service.CancelOrder(e.Request().Context(), user, e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order cancelled successfully", order)
}

func (c *OrderController) GetAllOrders(e echo.Context) error {
	resp, err := c.service.GetAllOrders(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrderStatus(e echo.Context) error {
	payload := dto.OrderStatusRequest{}
	if err := bindAndValidate(e, &payload, "UpdateOrderStatus"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	order, err := c.service.UpdateOrderStatus(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order status updated", order)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	err := c.service.DeleteOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order deleted", nil)
}
