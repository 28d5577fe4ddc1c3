package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digimarket/digimarket/internal/mykafka"
	"github.com/digimarket/digimarket/internal/service"
	"github.com/digimarket/digimarket/internal/transport"
)

type ProductHandler struct {
	Products *service.ProductService
	Producer *mykafka.Producer
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	categorie := c.QueryParam("categorie")
	page := parseIntDefault(c.QueryParam("page"), 0)
	size := parseIntDefault(c.QueryParam("size"), 0)

	products, err := h.Products.List(c.Request().Context(), categorie, page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	product, err := h.Products.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	product, err := h.Products.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"nom":        product.Nom,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Produit créé avec succès",
		"product": product,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	product, err := h.Products.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"nom":        product.Nom,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Produit modifié avec succès",
		"product": product,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Produit supprimé avec succès"})
}
