package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockReviewRepository is a mock implementation of catalog.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ReviewWithAuthor, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.ReviewWithAuthor), args.Error(1)
}

func (m *MockReviewRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]catalog.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestReviewServiceCreate(t *testing.T) {
	t.Run("creates a review on an existing product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo, zap.NewNop())
		product := newTestProduct(t)
		userID := uuid.New()

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		reviewRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Review")).Return(nil)

		info, err := svc.Create(context.Background(), userID, CreateReviewInput{
			ProductID: product.ID,
			Rating:    5,
			Message:   "Best momo in town",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, info.Rating)
		assert.Equal(t, userID, info.UserID)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects a review on a missing product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo, zap.NewNop())

		productID := uuid.New()
		productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), uuid.New(), CreateReviewInput{
			ProductID: productID,
			Rating:    4,
			Message:   "Good",
		})

		assert.Equal(t, shared.ErrNotFound, err)
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		svc := NewReviewService(reviewRepo, productRepo, zap.NewNop())
		product := newTestProduct(t)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.Create(context.Background(), uuid.New(), CreateReviewInput{
			ProductID: product.ID,
			Rating:    6,
			Message:   "Too good",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATING", domainErr.Code)
	})
}

func TestReviewServiceListByProduct(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	svc := NewReviewService(reviewRepo, productRepo, zap.NewNop())

	productID := uuid.New()
	review, err := catalog.NewReview(uuid.New(), productID, 4, "Great achar")
	require.NoError(t, err)

	reviewRepo.On("FindByProduct", mock.Anything, productID).Return([]catalog.ReviewWithAuthor{
		{Review: *review, AuthorName: "momo fan", AuthorEmail: "momo@example.com"},
	}, nil)

	infos, err := svc.ListByProduct(context.Background(), productID)

	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "momo fan", infos[0].AuthorName)
	assert.Equal(t, "momo@example.com", infos[0].AuthorEmail)
}

func TestReviewServiceDelete(t *testing.T) {
	productID := uuid.New()
	ownerID := uuid.New()

	newReview := func(t *testing.T) *catalog.Review {
		review, err := catalog.NewReview(ownerID, productID, 3, "Decent")
		require.NoError(t, err)
		return review
	}

	t.Run("owner deletes own review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := NewReviewService(reviewRepo, new(MockProductRepository), zap.NewNop())
		review := newReview(t)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
		reviewRepo.On("Delete", mock.Anything, review.ID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), ownerID, false, review.ID))
		reviewRepo.AssertExpectations(t)
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := NewReviewService(reviewRepo, new(MockProductRepository), zap.NewNop())
		review := newReview(t)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
		reviewRepo.On("Delete", mock.Anything, review.ID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), uuid.New(), true, review.ID))
	})

	t.Run("stranger is refused", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := NewReviewService(reviewRepo, new(MockProductRepository), zap.NewNop())
		review := newReview(t)

		reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

		err := svc.Delete(context.Background(), uuid.New(), false, review.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
