package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/models"
)

const userContextKey = "user"

// CurrentUser returns the user resolved by RequireLogin or AdminOnly, nil
// if the request never went through them.
func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
