package repository

import (
	"context"
	"errors"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the interface for cart data operations
// Consumers define this interface, not the MongoDB implementation
type CartRepository interface {
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
}
