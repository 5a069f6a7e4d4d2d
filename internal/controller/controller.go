package controller

import (
	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/middleware"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Guards are the route middlewares shared by the controllers. Admin must be
// chained after IsLoggedIn.
type Guards struct {
	IsLoggedIn echo.MiddlewareFunc
	Admin      echo.MiddlewareFunc
}

func bindAndValidate(e echo.Context, payload interface{}, component string) error {
	if err := e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return err
	}

	return e.Validate(payload)
}

func currentUser(e echo.Context) (domain.User, error) {
	user, ok := middleware.CurrentUser(e)
	if !ok {
		return user, errs.ErrNotLoggedIn
	}

	return user, nil
}
