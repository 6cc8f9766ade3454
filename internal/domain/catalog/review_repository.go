package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ReviewWithAuthor is a review joined with its author's public info
type ReviewWithAuthor struct {
	Review
	AuthorName  string
	AuthorEmail string
}

// ReviewRepository defines the persistence interface for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewWithAuthor, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
