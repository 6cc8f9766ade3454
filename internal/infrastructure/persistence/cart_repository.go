package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/cart"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
// Used by the cart service to run the guest-cart merge atomically.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: tx}
}

// InTx runs fn against a transaction-bound repository. The transaction
// commits when fn returns nil and rolls back otherwise.
func (r *GormCartRepository) InTx(ctx context.Context, fn func(repo cart.CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// FindByUserAndProduct finds the cart line for one (user, product) pair
func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartItem, error) {
	var item cart.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByUser finds all cart lines of a user joined with their products
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.HydratedItem, error) {
	var items []cart.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []cart.HydratedItem{}, nil
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	hydrated := make([]cart.HydratedItem, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			// product was deleted underneath the cart line, skip it
			continue
		}
		hydrated = append(hydrated, cart.HydratedItem{CartItem: item, Product: product})
	}
	return hydrated, nil
}

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Update updates an existing cart line
func (r *GormCartRepository) Update(ctx context.Context, item *cart.CartItem) error {
	result := r.db.WithContext(ctx).Model(item).Where("id = ?", item.ID).Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&cart.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser deletes all cart lines of a user
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&cart.CartItem{}, "user_id = ?", userID).Error
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
