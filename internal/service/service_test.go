package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/digimarket/digimarket/internal/hash"
	"github.com/digimarket/digimarket/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Nom:          "Test User",
		Role:         role,
		DateCreation: time.Now().UTC(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, nom string, prix float64, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		Nom:           nom,
		Categorie:     "informatique",
		Prix:          prix,
		QuantiteStock: stock,
		DateCreation:  time.Now().UTC(),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}
