package cart

import (
	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartItem holds the quantity of one product in one user's cart.
// There is at most one row per (user, product) pair.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart line for a user and product
func NewCartItem(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// AddQuantity increases the line quantity, capped at maxStock.
// Returns the number of units actually added.
func (c *CartItem) AddQuantity(qty, maxStock int) (int, error) {
	if qty <= 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	target := c.Quantity + qty
	if target > maxStock {
		target = maxStock
	}
	added := target - c.Quantity
	if added <= 0 {
		return 0, shared.ErrInsufficientStock
	}

	c.Quantity = target
	c.Touch()

	return added, nil
}

// RemoveQuantity decreases the line quantity. The line is empty and
// should be deleted when the remaining quantity reaches zero.
func (c *CartItem) RemoveQuantity(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	c.Quantity -= qty
	if c.Quantity < 0 {
		c.Quantity = 0
	}
	c.Touch()

	return nil
}

// SetQuantity replaces the line quantity, capped at maxStock.
// Setting zero empties the line.
func (c *CartItem) SetQuantity(qty, maxStock int) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if qty > maxStock {
		qty = maxStock
	}

	c.Quantity = qty
	c.Touch()

	return nil
}

// IsEmpty returns true when the line holds no units
func (c *CartItem) IsEmpty() bool {
	return c.Quantity <= 0
}

// LineTotal computes unitPrice multiplied by quantity
func (c *CartItem) LineTotal(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
