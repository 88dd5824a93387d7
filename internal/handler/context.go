package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"tutorhub/internal/auth"
	"tutorhub/internal/service"
)

// currentCaller extracts the authenticated caller from the validated JWT.
// The JWT middleware has already rejected missing or malformed tokens.
func currentCaller(c echo.Context) (service.Caller, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return service.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return service.Caller{ID: claims.UserID, Role: claims.Role}, nil
}
