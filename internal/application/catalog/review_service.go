package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo catalog.ReviewRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create posts a review on an existing product
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewInfo, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review, err := catalog.NewReview(userID, input.ProductID, input.Rating, input.Message)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create review")
	}

	s.logger.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("product_id", input.ProductID.String()))

	info := NewReviewInfo(review)
	return &info, nil
}

// ListByProduct returns all reviews of a product with author details
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewInfo, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, err
	}

	infos := make([]ReviewInfo, len(reviews))
	for i := range reviews {
		infos[i] = NewReviewInfoWithAuthor(&reviews[i])
	}
	return infos, nil
}

// ListMine returns the requesting user's own reviews
func (s *ReviewService) ListMine(ctx context.Context, userID uuid.UUID) ([]ReviewInfo, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user reviews", zap.Error(err))
		return nil, err
	}

	infos := make([]ReviewInfo, len(reviews))
	for i := range reviews {
		infos[i] = NewReviewInfo(&reviews[i])
	}
	return infos, nil
}

// Delete removes a review. Owners delete their own; admins delete any.
func (s *ReviewService) Delete(ctx context.Context, requesterID uuid.UUID, isAdmin bool, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !review.CanBeDeletedBy(requesterID, isAdmin) {
		return shared.NewDomainError("FORBIDDEN", "You can only delete your own reviews")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err))
		return err
	}

	s.logger.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("deleted_by", requesterID.String()))
	return nil
}
