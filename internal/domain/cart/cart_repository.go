package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/catalog"
)

// HydratedItem is a cart line joined with its product snapshot
type HydratedItem struct {
	CartItem
	Product catalog.Product
}

// CartRepository defines the persistence interface for cart lines
type CartRepository interface {
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]HydratedItem, error)
	Save(ctx context.Context, item *CartItem) error
	Update(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
