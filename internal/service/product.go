package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/digimarket/digimarket/internal/models"
	"github.com/digimarket/digimarket/internal/transport"
	"github.com/digimarket/digimarket/internal/util"
	"github.com/digimarket/digimarket/internal/validation"
)

type ProductService struct {
	DB *gorm.DB
}

// List returns products, optionally filtered by category. page <= 0 means
// no windowing: the full list comes back, as the public catalog endpoint
// has always behaved.
func (s *ProductService) List(ctx context.Context, categorie string, page, size int) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC")
	if categorie != "" {
		q = q.Where("categorie = ?", categorie)
	}
	if page > 0 {
		offset, limit := util.Calculate(page, size)
		q = q.Offset(offset).Limit(limit)
	}

	// Find leaves a nil slice on zero rows, which would serialize as null
	// instead of an empty array.
	products := []models.Product{}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Produit", ID: id}
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if errs := validation.Product(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	product := models.Product{
		Nom:          req.Nom,
		Categorie:    req.Categorie,
		Prix:         *req.Prix,
		DateCreation: time.Now().UTC(),
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.QuantiteStock != nil {
		product.QuantiteStock = *req.QuantiteStock
	}

	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies only the fields present in the request, re-checking the
// price and stock constraints on the way.
func (s *ProductService) Update(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Prix != nil && *req.Prix <= 0 {
		return nil, &ValidationError{Fields: validation.Errors{
			"prix": "Le prix doit être un nombre positif",
		}}
	}
	if req.QuantiteStock != nil && *req.QuantiteStock < 0 {
		return nil, &ValidationError{Fields: validation.Errors{
			"quantite_stock": "La quantité doit être un nombre entier positif ou nul",
		}}
	}

	if req.Nom != "" {
		product.Nom = req.Nom
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Prix != nil {
		product.Prix = *req.Prix
	}
	if req.QuantiteStock != nil {
		product.QuantiteStock = *req.QuantiteStock
	}
	if req.Categorie != "" {
		product.Categorie = req.Categorie
	}

	if err := s.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}
