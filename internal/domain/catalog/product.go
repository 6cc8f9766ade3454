package catalog

import (
	"strings"

	"github.com/momohub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "available"
	ProductStatusUnavailable ProductStatus = "unavailable"
)

// MainType represents the food category of a product
type MainType string

const (
	MainTypeVeg     MainType = "Veg"
	MainTypeChicken MainType = "Chicken"
	MainTypeBuff    MainType = "Buff"
	MainTypePork    MainType = "Pork"
)

// PlaceholderImageURL is served for products created without an image,
// matching the storefront's historical fallback behavior.
const PlaceholderImageURL = "https://media.istockphoto.com/id/814423752/photo/placeholder.jpg"

// Product represents an item on the menu.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	StockQty    int             `gorm:"not null;default:0"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'available'"`
	MainType    MainType        `gorm:"type:varchar(20);not null"`
	ImagePath   string          `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price decimal.Decimal, stockQty int, status ProductStatus, mainType MainType, imagePath string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateStockQty(stockQty); err != nil {
		return nil, err
	}
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}
	if err := ValidateMainType(mainType); err != nil {
		return nil, err
	}

	if imagePath == "" {
		imagePath = PlaceholderImageURL
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		StockQty:    stockQty,
		Status:      status,
		MainType:    mainType,
		ImagePath:   imagePath,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Touch()

	return nil
}

// SetPrice sets the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price
	p.Touch()

	return nil
}

// SetStockQty sets the stock quantity
func (p *Product) SetStockQty(qty int) error {
	if err := validateStockQty(qty); err != nil {
		return err
	}

	p.StockQty = qty
	p.Touch()

	return nil
}

// SetStatus sets the availability status
func (p *Product) SetStatus(status ProductStatus) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}

	p.Status = status
	p.Touch()

	return nil
}

// SetMainType sets the food category
func (p *Product) SetMainType(mainType MainType) error {
	if err := ValidateMainType(mainType); err != nil {
		return err
	}

	p.MainType = mainType
	p.Touch()

	return nil
}

// SetImagePath sets the stored image reference
func (p *Product) SetImagePath(path string) {
	if path == "" {
		path = PlaceholderImageURL
	}
	p.ImagePath = path
	p.Touch()
}

// IsAvailable returns true if the product can be sold
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusAvailable
}

// HasStock returns true if at least qty units are in stock
func (p *Product) HasStock(qty int) bool {
	return qty <= p.StockQty
}

// ValidateStatus checks a product status value
func ValidateStatus(status ProductStatus) error {
	switch status {
	case ProductStatusAvailable, ProductStatusUnavailable:
		return nil
	}
	return shared.NewDomainError("INVALID_STATUS", "Status must be available or unavailable")
}

// ValidateMainType checks a main type value
func ValidateMainType(mainType MainType) error {
	switch mainType {
	case MainTypeVeg, MainTypeChicken, MainTypeBuff, MainTypePork:
		return nil
	}
	return shared.NewDomainError("INVALID_MAIN_TYPE", "Main type must be one of Veg, Chicken, Buff, Pork")
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	return nil
}

func validateStockQty(qty int) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	return nil
}
