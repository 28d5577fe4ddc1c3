package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/service"
)

// writeError maps service errors to the wire format: per-field "errors"
// bodies for validation and conflicts, "message" bodies for the rest.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": ve.Fields})
	}

	var ce *service.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": map[string]string{ce.Field: ce.Message}})
	}

	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": nf.Error()})
	}

	if errors.Is(err, service.ErrAuthorization) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Accès refusé"})
	}
	if errors.Is(err, service.ErrAuthentication) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Erreur d'authentification"})
	}

	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Erreur interne"})
}
