package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/service"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, guards Guards) {
	c := ProductController{
		service: service,
	}
	g.GET("/products", c.GetProducts)
	g.GET("/product/:id", c.GetProductDetails)
	g.GET("/reviews", c.GetReviews)
	g.PUT("/review", c.AddReview, guards.IsLoggedIn)

	g.GET("/admin/products", c.GetAllProducts, guards.IsLoggedIn, guards.Admin)
	g.POST("/products/create", c.AddProduct, guards.IsLoggedIn, guards.Admin)
	g.PUT("/product/:id", c.UpdateProduct, guards.IsLoggedIn, guards.Admin)
	g.PUT("/products/:id", c.UpdateProduct, guards.IsLoggedIn, guards.Admin)
	g.DELETE("/product/:id", c.DeleteProduct, guards.IsLoggedIn, guards.Admin)
	g.DELETE("/products/:id", c.DeleteProduct, guards.IsLoggedIn, guards.Admin)
	g.DELETE("/reviews", c.DeleteReview, guards.IsLoggedIn, guards.Admin)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	param := pkgdto.Filter{}
	if err := e.Bind(&param); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteBindErrorResponse(e, err)
	}

	var err error
	if param.MinPrice, err = queryFloat(e, "price[gte]"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	if param.MaxPrice, err = queryFloat(e, "price[lte]"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	if param.MinRating, err = queryFloat(e, "ratings[gte]"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetProducts(e.Request().Context(), param)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func queryFloat(e echo.Context, key string) (*float64, error) {
	raw := e.QueryParam(key)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s", errs.ErrClient, key)
	}

	return &value, nil
}

func (c *ProductController) GetAllProducts(e echo.Context) error {
	products, err := c.service.GetAllProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (c *ProductController) GetProductDetails(e echo.Context) error {
	product, err := c.service.GetProductDetails(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ProductRequest{}
	if err := bindAndValidate(e, &payload, "AddProduct"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	product, err := c.service.AddProduct(e.Request().Context(), user, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponseWithStatus(e, http.StatusCreated, "Product created", product)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := bindAndValidate(e, &payload, "UpdateProduct"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	payload.ID = e.Param("id")
	product, err := c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product updated", product)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product deleted successfully", nil)
}

func (c *ProductController) AddReview(e echo.Context) error {
	user, err := currentUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ReviewRequest{}
	if err := bindAndValidate(e, &payload, "AddReview"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	if err := c.service.AddReview(e.Request().Context(), user, payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Review saved", nil)
}

func (c *ProductController) GetReviews(e echo.Context) error {
	reviews, err := c.service.GetReviews(e.Request().Context(), e.QueryParam("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", reviews)
}

func (c *ProductController) DeleteReview(e echo.Context) error {
	err := c.service.DeleteReview(e.Request().Context(), e.QueryParam("productId"), e.QueryParam("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Review deleted successfully", nil)
}
