package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/service"
)

// RequireLogin resolves the bearer token to a user and stores it in the
// request context. Any failure, including unexpected ones, comes back as a
// generic 401 so nothing about the token or the account leaks.
func RequireLogin(svc *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Erreur d'authentification"})
			}

			user, err := svc.Authorize(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Erreur d'authentification"})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}
