package controller

import (
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/service"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/labstack/echo/v4"
)

type BannerController struct {
	service service.BannerService
}

func CreateBannerController(g *echo.Group, service service.BannerService, guards Guards) {
	c := BannerController{
		service: service,
	}
	g.GET("/config/banner", c.GetBanner)
	g.PUT("/admin/config/banner", c.UpdateBanner, guards.IsLoggedIn, guards.Admin)
}

func (c *BannerController) GetBanner(e echo.Context) error {
	banner, err := c.service.GetBanner(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", banner)
}

func (c *BannerController) UpdateBanner(e echo.Context) error {
	payload := dto.BannerRequest{}
	if err := bindAndValidate(e, &payload, "UpdateBanner"); err != nil {
		return response.WriteBindErrorResponse(e, err)
	}

	banner, err := c.service.UpdateBanner(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Banner updated", banner)
}
