package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/service"
)

// AdminOnly authenticates like RequireLogin and additionally requires the
// admin role. It reuses a user already resolved by RequireLogin when both
// middlewares are stacked on a route.
func AdminOnly(svc *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				token := bearerToken(c)
				if token == "" {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Erreur d'authentification"})
				}
				u, err := svc.Authorize(c.Request().Context(), token)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Erreur d'authentification"})
				}
				user = u
				c.Set(userContextKey, user)
			}

			if err := svc.RequireRole(user, "admin"); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Accès réservé aux administrateurs"})
			}
			return next(c)
		}
	}
}
