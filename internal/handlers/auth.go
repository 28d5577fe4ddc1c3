package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/mykafka"
	"github.com/digimarket/digimarket/internal/service"
	"github.com/digimarket/digimarket/internal/transport"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	user, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Utilisateur créé avec succès",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	token, user, err := h.Auth.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrAuthentication) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Email ou mot de passe incorrect"})
		}
		return writeError(c, err)
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Connexion réussie",
		"token":   token,
		"user":    user,
	})
}
