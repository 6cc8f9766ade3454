package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// LineView is one cart line joined with its product snapshot
type LineView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	StockQty  int             `json:"stock_qty"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartView is the full cart with totals. The delivery fee applies only
// when the cart holds at least one line.
type CartView struct {
	Items       []LineView      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// MutationResult reports the outcome of a single-line cart change
type MutationResult struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Changed   int       `json:"changed"`
}

// MergeLine is one line of a guest cart being merged after login
type MergeLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// SkippedLine explains why a guest-cart line was not merged
type SkippedLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// MergeResult reports the outcome of a guest-cart merge
type MergeResult struct {
	Merged  int           `json:"merged"`
	Skipped []SkippedLine `json:"skipped"`
}

func newLineView(item *cart.HydratedItem) LineView {
	return LineView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Name:      item.Product.Name,
		ImageURL:  item.Product.ImagePath,
		UnitPrice: item.Product.Price,
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal(item.Product.Price),
		StockQty:  item.Product.StockQty,
		AddedAt:   item.CreatedAt,
	}
}
