package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/digimarket/digimarket/internal/logging"
	"github.com/digimarket/digimarket/internal/models"
	"github.com/digimarket/digimarket/internal/transport"
	"github.com/digimarket/digimarket/internal/validation"
)

type OrderService struct {
	DB *gorm.DB
}

// CreateOrder runs the whole order workflow in a single transaction: order
// row, one line per item in the order they were supplied, price snapshot
// and stock decrement per line. The first unknown product or short stock
// aborts everything, no partial order ever persists.
//
// Each product row is locked with SELECT ... FOR UPDATE before the stock
// check, so two concurrent orders on the same product serialize and cannot
// jointly oversell. SQLite has no FOR UPDATE; its single-writer lock gives
// the same guarantee and the clause is skipped there.
func (s *OrderService) CreateOrder(ctx context.Context, user *models.User, req transport.CreateOrderRequest) (*models.Order, []models.OrderLine, error) {
	l := logging.FromContext(ctx).With("svc", "order.create_order", "user_id", user.ID)

	if errs := validation.Order(req); len(errs) > 0 {
		return nil, nil, &ValidationError{Fields: errs}
	}

	var (
		order  models.Order
		lignes []models.OrderLine
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UtilisateurID:    user.ID,
			DateCommande:     time.Now().UTC(),
			AdresseLivraison: req.AdresseLivraison,
			Statut:           models.StatutEnAttente,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			q := tx
			if tx.Dialector.Name() == "postgres" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var produit models.Product
			if err := q.First(&produit, item.ProduitID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "Produit", ID: item.ProduitID}
				}
				return err
			}

			if produit.QuantiteStock < item.Quantite {
				return &StockError{Produit: produit.Nom}
			}

			ligne := models.OrderLine{
				CommandeID:   order.ID,
				ProduitID:    produit.ID,
				Quantite:     item.Quantite,
				PrixUnitaire: produit.Prix,
			}
			if err := tx.Create(&ligne).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", produit.ID).
				Update("quantite_stock", gorm.Expr("quantite_stock - ?", item.Quantite)).Error; err != nil {
				return err
			}

			lignes = append(lignes, ligne)
		}
		return nil
	})
	if err != nil {
		l.Warn("create_order_aborted", "error", err)
		return nil, nil, err
	}

	l.Info("create_order_success", "order_id", order.ID, "lines", len(lignes))
	return &order, lignes, nil
}

// List returns every order for an admin and only the caller's own orders
// otherwise.
func (s *OrderService) List(ctx context.Context, user *models.User) ([]models.Order, error) {
	q := s.DB.WithContext(ctx).Model(&models.Order{}).Order("id ASC")
	if user.Role != "admin" {
		q = q.Where("utilisateur_id = ?", user.ID)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Get fetches an order and enforces the ownership boundary: non-admins may
// only see their own orders.
func (s *OrderService) Get(ctx context.Context, user *models.User, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Commande", ID: id}
		}
		return nil, err
	}
	if user.Role != "admin" && order.UtilisateurID != user.ID {
		return nil, ErrAuthorization
	}
	return &order, nil
}

// UpdateStatus sets one of the four statuses verbatim. There is no
// transition table: any status may replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, statut *string) (*models.Order, error) {
	// The order is resolved first: an unknown id is a 404 even when the
	// requested status is also invalid.
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Commande", ID: id}
		}
		return nil, err
	}

	if statut == nil || !models.ValidStatut(*statut) {
		return nil, &ValidationError{Fields: validation.Errors{"statut": "Statut invalide"}}
	}

	order.Statut = *statut
	if err := s.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Lines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var lignes []models.OrderLine
	if err := s.DB.WithContext(ctx).Where("commande_id = ?", orderID).Order("id ASC").Find(&lignes).Error; err != nil {
		return nil, err
	}
	return lignes, nil
}

// View assembles the external representation of an order: owner name via an
// explicit lookup and the total recomputed from the lines.
func (s *OrderService) View(ctx context.Context, order *models.Order) (*transport.OrderResponse, error) {
	var owner models.User
	if err := s.DB.WithContext(ctx).First(&owner, order.UtilisateurID).Error; err != nil {
		return nil, err
	}
	lignes, err := s.Lines(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &transport.OrderResponse{
		ID:               order.ID,
		UtilisateurID:    order.UtilisateurID,
		Utilisateur:      owner.Nom,
		DateCommande:     order.DateCommande,
		AdresseLivraison: order.AdresseLivraison,
		Statut:           order.Statut,
		Total:            models.OrderTotal(lignes),
	}, nil
}

// LineViews resolves each line's product name with an explicit lookup.
func (s *OrderService) LineViews(ctx context.Context, lignes []models.OrderLine) ([]transport.OrderLineResponse, error) {
	views := make([]transport.OrderLineResponse, 0, len(lignes))
	for _, ligne := range lignes {
		var produit models.Product
		nom := ""
		if err := s.DB.WithContext(ctx).First(&produit, ligne.ProduitID).Error; err == nil {
			nom = produit.Nom
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		views = append(views, transport.OrderLineResponse{
			ID:           ligne.ID,
			CommandeID:   ligne.CommandeID,
			ProduitID:    ligne.ProduitID,
			Produit:      nom,
			Quantite:     ligne.Quantite,
			PrixUnitaire: ligne.PrixUnitaire,
			PrixTotal:    ligne.PrixTotal(),
		})
	}
	return views, nil
}
