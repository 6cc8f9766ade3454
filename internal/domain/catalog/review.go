package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/shared"
)

// Review represents a customer review of a product
type Review struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review
func NewReview(userID, productID uuid.UUID, rating int, message string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Rating:     rating,
		Message:    strings.TrimSpace(message),
	}, nil
}

// CanBeDeletedBy returns true if the given user may delete this review.
// Owners delete their own reviews; admins delete any.
func (r *Review) CanBeDeletedBy(userID uuid.UUID, isAdmin bool) bool {
	return isAdmin || r.UserID == userID
}
