package service

import (
	"errors"
	"fmt"

	"github.com/digimarket/digimarket/internal/validation"
)

var (
	ErrAuthentication = errors.New("authentication") // 401
	ErrAuthorization  = errors.New("authorization")  // 403
)

// ValidationError carries the per-field messages accumulated by the
// validation package. Handlers render it as a 400 with an "errors" body.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %d invalid field(s)", len(e.Fields))
}

// ConflictError is a unique-key collision, rendered as a 400 on the field
// that collided.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Field
}

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d non trouvé", e.Resource, e.ID)
}

// StockError aborts an order when a requested quantity exceeds the product's
// current stock.
type StockError struct {
	Produit string
}

func (e *StockError) Error() string {
	return "Stock insuffisant pour " + e.Produit
}
