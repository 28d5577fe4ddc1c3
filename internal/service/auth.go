package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/digimarket/digimarket/internal/hash"
	"github.com/digimarket/digimarket/internal/logging"
	"github.com/digimarket/digimarket/internal/models"
	"github.com/digimarket/digimarket/internal/transport"
	"github.com/digimarket/digimarket/internal/validation"
)

const TokenTTL = time.Hour

type AuthService struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if errs := validation.Register(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		l.Warn("register_conflict", "email", req.Email)
		return nil, &ConflictError{Field: "email", Message: "Cet email est déjà utilisé"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.MotDePasse)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "client"
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		Nom:          req.Nom,
		Role:         role,
		DateCreation: time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	l.Info("register_success", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if errs := validation.Login(req); len(errs) > 0 {
		return "", nil, &ValidationError{Fields: errs}
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller.
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "email", req.Email)
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrAuthentication)
		}
		return "", nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.MotDePasse) {
		l.Warn("login_failed", "email", req.Email)
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	}

	token, err := s.signToken(user.Email)
	if err != nil {
		return "", nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return token, &user, nil
}

func (s *AuthService) signToken(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

// Authorize verifies the bearer token and resolves the embedded email to a
// user. Every failure mode collapses into ErrAuthentication so nothing
// about the token or the account leaks.
func (s *AuthService) Authorize(ctx context.Context, rawToken string) (*models.User, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrAuthentication)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", ErrAuthentication)
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: invalid subject claim", ErrAuthentication)
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: unknown user", ErrAuthentication)
	}

	return &user, nil
}

func (s *AuthService) RequireRole(user *models.User, role string) error {
	if user == nil || user.Role != role {
		return fmt.Errorf("%w: role %q required", ErrAuthorization, role)
	}
	return nil
}
