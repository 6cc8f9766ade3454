package catalog

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ImageUpload carries an uploaded product image
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// CreateProductInput contains the data needed to add a menu item
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	StockQty    int
	Status      string
	MainType    string
	Image       *ImageUpload
}

// UpdateProductInput contains partial product changes. Nil fields are
// left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	StockQty    *int
	Status      *string
	MainType    *string
	Image       *ImageUpload
}

// CreateReviewInput contains the data needed to post a review
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Message   string
}

// ProductInfo is the public view of a product
type ProductInfo struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stock_qty"`
	Status      string          `json:"status"`
	MainType    string          `json:"main_type"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductInfo builds a ProductInfo from the domain entity
func NewProductInfo(p *catalog.Product) ProductInfo {
	return ProductInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		StockQty:    p.StockQty,
		Status:      string(p.Status),
		MainType:    string(p.MainType),
		ImageURL:    p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ReviewInfo is the public view of a review, including its author
type ReviewInfo struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	UserID      uuid.UUID `json:"user_id"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	AuthorName  string    `json:"author_name,omitempty"`
	AuthorEmail string    `json:"author_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewReviewInfo builds a ReviewInfo from the domain entity
func NewReviewInfo(r *catalog.Review) ReviewInfo {
	return ReviewInfo{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

// NewReviewInfoWithAuthor builds a ReviewInfo from the joined row
func NewReviewInfoWithAuthor(r *catalog.ReviewWithAuthor) ReviewInfo {
	info := NewReviewInfo(&r.Review)
	info.AuthorName = r.AuthorName
	info.AuthorEmail = r.AuthorEmail
	return info
}
