package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/response"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const (
	TokenCookie    = "token"
	currentUserKey = "currentUser"
)

// IsLoggedIn validates the bearer token or the token cookie and stores the
// parsed token under "user".
func IsLoggedIn(secret string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization:Bearer ,cookie:" + TokenCookie,
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			if !hasToken(c) {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			log.Ctx(c.Request().Context()).Debug().Err(err).Str("component", "IsLoggedIn").Msg("rejected token")
			return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
		},
	})
}

func hasToken(c echo.Context) bool {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ") {
		return true
	}

	cookie, err := c.Cookie(TokenCookie)
	return err == nil && cookie.Value != ""
}

type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
}

// LoadUser resolves the token subject to a stored user. It must run after
// IsLoggedIn.
func LoadUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := utils.ExtractTokenUserID(c)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			user, err := users.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// AuthorizeRoles lets the request through only for users holding one of roles.
func AuthorizeRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return response.WriteErrorResponse(c, fmt.Errorf("Role: %s %w", user.Role, errs.ErrRoleNotAllowed), nil)
		}
	}
}

func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(currentUserKey).(domain.User)
	return user, ok
}

// Authenticate runs IsLoggedIn followed by LoadUser.
func Authenticate(secret string, users UserLoader) echo.MiddlewareFunc {
	isLoggedIn := IsLoggedIn(secret)
	loadUser := LoadUser(users)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return isLoggedIn(loadUser(next))
	}
}
