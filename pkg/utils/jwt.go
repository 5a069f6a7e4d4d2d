package utils

import (
	"time"

	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(userID string, userName string, jwtSecretKey string, expire time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["exp"] = time.Now().Add(expire).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUserID reads the user id from the token stored by the JWT
// middleware.
func ExtractTokenUserID(c echo.Context) (string, error) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return "", errs.ErrInvalidToken
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return "", errs.ErrInvalidToken
	}

	userID, ok := claims["userID"].(string)
	if !ok || userID == "" {
		return "", errs.ErrInvalidToken
	}

	return userID, nil
}
