package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/digimarket/digimarket/internal/middleware/auth"
	"github.com/digimarket/digimarket/internal/mykafka"
	"github.com/digimarket/digimarket/internal/service"
	"github.com/digimarket/digimarket/internal/transport"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	user := authmw.CurrentUser(c)
	ctx := c.Request().Context()

	orders, err := h.Orders.List(ctx, user)
	if err != nil {
		return writeError(c, err)
	}

	views := make([]transport.OrderResponse, 0, len(orders))
	for i := range orders {
		v, err := h.Orders.View(ctx, &orders[i])
		if err != nil {
			return writeError(c, err)
		}
		views = append(views, *v)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	user := authmw.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	ctx := c.Request().Context()
	order, err := h.Orders.Get(ctx, user, id)
	if err != nil {
		return writeError(c, err)
	}

	view, err := h.Orders.View(ctx, order)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	user := authmw.CurrentUser(c)

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	ctx := c.Request().Context()
	order, _, err := h.Orders.CreateOrder(ctx, user, req)
	if err != nil {
		// Workflow aborts surface as 400s naming the offending product,
		// the transaction has already been rolled back in full.
		var nf *service.NotFoundError
		if errors.As(err, &nf) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"errors": map[string]string{"items.produit_id": fmt.Sprintf("Produit %d non trouvé", nf.ID)},
			})
		}
		var se *service.StockError
		if errors.As(err, &se) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"errors": map[string]string{"items.quantite": "Stock insuffisant pour " + se.Produit},
			})
		}
		return writeError(c, err)
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  user.ID,
	})

	view, err := h.Orders.View(ctx, order)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Commande créée avec succès",
		"order":   view,
	})
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Requête invalide"})
	}

	ctx := c.Request().Context()
	order, err := h.Orders.UpdateStatus(ctx, id, req.Statut)
	if err != nil {
		return writeError(c, err)
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":     "order_status_updated",
		"order_id": order.ID,
		"statut":   order.Statut,
	})

	view, err := h.Orders.View(ctx, order)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Statut de la commande modifié avec succès",
		"order":   view,
	})
}

func (h *OrderHandler) GetOrderLines(c echo.Context) error {
	user := authmw.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Identifiant invalide"})
	}

	ctx := c.Request().Context()
	order, err := h.Orders.Get(ctx, user, id)
	if err != nil {
		return writeError(c, err)
	}

	lignes, err := h.Orders.Lines(ctx, order.ID)
	if err != nil {
		return writeError(c, err)
	}
	views, err := h.Orders.LineViews(ctx, lignes)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"commande_id": order.ID,
		"statut":      order.Statut,
		"total":       sumLineTotals(views),
		"lignes":      views,
	})
}

func sumLineTotals(views []transport.OrderLineResponse) float64 {
	var total float64
	for _, v := range views {
		total += v.PrixTotal
	}
	return total
}
