package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/cart"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/momohub/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of TxCartRepository.
// InTx runs the callback against the mock itself; transactional
// behavior is covered by the repository tests.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.HydratedItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]cart.HydratedItem), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) InTx(ctx context.Context, fn func(repo cart.CartRepository) error) error {
	return fn(m)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByMainType(ctx context.Context, mainType catalog.MainType, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, mainType, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestCartService(cartRepo *MockCartRepository, productRepo *MockProductRepository) *CartService {
	return NewCartService(cartRepo, productRepo, config.CartConfig{DeliveryFee: 60}, zap.NewNop())
}

func newTestProduct(t *testing.T, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		"Steamed Momo",
		"Ten pieces with tomato achar",
		decimal.NewFromInt(price),
		stock,
		catalog.ProductStatusAvailable,
		catalog.MainTypeChicken,
		"/uploads/momo.jpg",
	)
	require.NoError(t, err)
	return product
}

func newTestLine(t *testing.T, userID, productID uuid.UUID, qty int) *cart.CartItem {
	t.Helper()
	item, err := cart.NewCartItem(userID, productID, qty)
	require.NoError(t, err)
	return item
}

func TestCartServiceGet(t *testing.T) {
	userID := uuid.New()

	t.Run("empty cart has no delivery fee", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))

		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.HydratedItem{}, nil)

		view, err := svc.Get(context.Background(), userID)

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.True(t, view.DeliveryFee.IsZero())
		assert.True(t, view.Total.IsZero())
	})

	t.Run("totals add the flat delivery fee", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		product := newTestProduct(t, 320, 25)
		line := newTestLine(t, userID, product.ID, 2)

		cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.HydratedItem{
			{CartItem: *line, Product: *product},
		}, nil)

		view, err := svc.Get(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.True(t, decimal.NewFromInt(640).Equal(view.Subtotal), "subtotal: %s", view.Subtotal)
		assert.True(t, decimal.NewFromInt(60).Equal(view.DeliveryFee))
		assert.True(t, decimal.NewFromInt(700).Equal(view.Total), "total: %s", view.Total)
	})
}

func TestCartServiceAddUnits(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a new line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartItem")).Return(nil)

		result, err := svc.AddUnits(context.Background(), userID, product.ID, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Quantity)
		assert.Equal(t, 2, result.Changed)
	})

	t.Run("caps a new line at stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 3)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartItem")).Return(nil)

		result, err := svc.AddUnits(context.Background(), userID, product.ID, 10)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Quantity)
	})

	t.Run("grows an existing line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)
		line := newTestLine(t, userID, product.ID, 2)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		result, err := svc.AddUnits(context.Background(), userID, product.ID, 3)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Quantity)
		assert.Equal(t, 3, result.Changed)
	})

	t.Run("refuses a line already at stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 2)
		line := newTestLine(t, userID, product.ID, 2)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)

		_, err := svc.AddUnits(context.Background(), userID, product.ID, 1)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("refuses an unavailable product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)
		require.NoError(t, product.SetStatus(catalog.ProductStatusUnavailable))

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.AddUnits(context.Background(), userID, product.ID, 1)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})
}

func TestCartServiceRemoveUnits(t *testing.T) {
	userID := uuid.New()

	t.Run("shrinks a line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		productID := uuid.New()
		line := newTestLine(t, userID, productID, 3)

		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		result, err := svc.RemoveUnits(context.Background(), userID, productID, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Quantity)
		assert.Equal(t, 1, result.Changed)
	})

	t.Run("deletes a line that reaches zero", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		productID := uuid.New()
		line := newTestLine(t, userID, productID, 2)

		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(line, nil)
		cartRepo.On("Delete", mock.Anything, line.ID).Return(nil)

		result, err := svc.RemoveUnits(context.Background(), userID, productID, 5)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Quantity)
		cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing line is not found", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		productID := uuid.New()

		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.RemoveUnits(context.Background(), userID, productID, 1)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartServiceSetQuantity(t *testing.T) {
	userID := uuid.New()

	t.Run("is idempotent for the same target", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)
		line := newTestLine(t, userID, product.ID, 2)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		first, err := svc.SetQuantity(context.Background(), userID, product.ID, 4)
		require.NoError(t, err)
		second, err := svc.SetQuantity(context.Background(), userID, product.ID, 4)
		require.NoError(t, err)

		assert.Equal(t, 4, first.Quantity)
		assert.Equal(t, 4, second.Quantity)
		assert.Equal(t, 0, second.Changed)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		productID := uuid.New()
		line := newTestLine(t, userID, productID, 2)

		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(line, nil)
		cartRepo.On("Delete", mock.Anything, line.ID).Return(nil)

		result, err := svc.SetQuantity(context.Background(), userID, productID, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Quantity)
	})

	t.Run("zero on a missing line is a no-op", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		svc := newTestCartService(cartRepo, new(MockProductRepository))
		productID := uuid.New()

		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(nil, shared.ErrNotFound)

		result, err := svc.SetQuantity(context.Background(), userID, productID, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Quantity)
		cartRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("caps at stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 5)
		line := newTestLine(t, userID, product.ID, 2)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		result, err := svc.SetQuantity(context.Background(), userID, product.ID, 50)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Quantity)
	})
}

func TestCartServiceMerge(t *testing.T) {
	userID := uuid.New()

	t.Run("adds guest quantities onto existing lines", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)
		line := newTestLine(t, userID, product.ID, 2)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		result, err := svc.Merge(context.Background(), userID, []MergeLine{
			{ProductID: product.ID, Quantity: 3},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Merged)
		assert.Empty(t, result.Skipped)
		assert.Equal(t, 5, line.Quantity)
	})

	t.Run("creates missing lines and reports skipped ones", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 25)
		goneID := uuid.New()

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("FindByID", mock.Anything, goneID).Return(nil, shared.ErrNotFound)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartItem")).Return(nil)

		result, err := svc.Merge(context.Background(), userID, []MergeLine{
			{ProductID: product.ID, Quantity: 2},
			{ProductID: goneID, Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Merged)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, goneID, result.Skipped[0].ProductID)
		assert.Equal(t, "product not found", result.Skipped[0].Reason)
	})

	t.Run("caps merged quantities at stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := newTestCartService(cartRepo, productRepo)
		product := newTestProduct(t, 320, 4)
		line := newTestLine(t, userID, product.ID, 3)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByUserAndProduct", mock.Anything, userID, product.ID).Return(line, nil)
		cartRepo.On("Update", mock.Anything, line).Return(nil)

		result, err := svc.Merge(context.Background(), userID, []MergeLine{
			{ProductID: product.ID, Quantity: 10},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Merged)
		assert.Equal(t, 4, line.Quantity)
	})
}

func TestCartServiceClear(t *testing.T) {
	cartRepo := new(MockCartRepository)
	svc := newTestCartService(cartRepo, new(MockProductRepository))
	userID := uuid.New()

	cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil)

	assert.NoError(t, svc.Clear(context.Background(), userID))
	cartRepo.AssertExpectations(t)
}
