package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/digimarket/digimarket/internal/handlers"
	"github.com/digimarket/digimarket/internal/hash"
	"github.com/digimarket/digimarket/internal/models"
	"github.com/digimarket/digimarket/internal/service"
	"github.com/digimarket/digimarket/internal/transport"
	httpserver "github.com/digimarket/digimarket/internal/transport/http"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	authSvc := &service.AuthService{DB: db, JWTSecret: []byte("test_secret")}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		DB:             db,
		Auth:           authSvc,
		AuthHandler:    &handlers.AuthHandler{Auth: authSvc},
		ProductHandler: &handlers.ProductHandler{Products: &service.ProductService{DB: db}},
		OrderHandler:   &handlers.OrderHandler{Orders: &service.OrderService{DB: db}},
	})

	return &testEnv{T: t, E: e, DB: db, Auth: authSvc}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// seedLogin creates a user directly and returns a bearer token for it.
func (env *testEnv) seedLogin(email, role string) (string, *models.User) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)
	user := models.User{
		Email:        email,
		PasswordHash: pwHash,
		Nom:          "Test User",
		Role:         role,
		DateCreation: time.Now().UTC(),
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, _, err := env.Auth.Login(context.Background(), transport.LoginRequest{
		Email:      email,
		MotDePasse: "password",
	})
	require.NoError(env.T, err)
	return token, &user
}

func (env *testEnv) seedProduct(nom, categorie string, prix float64, stock int) *models.Product {
	env.T.Helper()

	product := models.Product{
		Nom:           nom,
		Categorie:     categorie,
		Prix:          prix,
		QuantiteStock: stock,
		DateCreation:  time.Now().UTC(),
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return &product
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
