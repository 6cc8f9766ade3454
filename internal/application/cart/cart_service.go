package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/cart"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/momohub/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TxCartRepository is a cart repository that can also run a batch of
// cart operations inside one database transaction.
type TxCartRepository interface {
	cart.CartRepository
	InTx(ctx context.Context, fn func(repo cart.CartRepository) error) error
}

// CartService handles the per-user shopping cart
type CartService struct {
	cartRepo    TxCartRepository
	productRepo catalog.ProductRepository
	deliveryFee decimal.Decimal
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(cartRepo TxCartRepository, productRepo catalog.ProductRepository, cfg config.CartConfig, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		deliveryFee: decimal.NewFromInt(cfg.DeliveryFee),
		logger:      logger,
	}
}

// Get returns the user's cart with line and order totals
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, err
	}

	view := &CartView{
		Items:       make([]LineView, 0, len(items)),
		Subtotal:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		Total:       decimal.Zero,
	}
	for i := range items {
		line := newLineView(&items[i])
		view.Items = append(view.Items, line)
		view.Subtotal = view.Subtotal.Add(line.LineTotal)
	}
	if len(view.Items) > 0 {
		view.DeliveryFee = s.deliveryFee
	}
	view.Total = view.Subtotal.Add(view.DeliveryFee)

	return view, nil
}

// AddUnits adds qty units of a product to the cart, creating the line
// when needed. The line quantity never exceeds the product's stock.
func (s *CartService) AddUnits(ctx context.Context, userID, productID uuid.UUID, qty int) (*MutationResult, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	item, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		added, err := item.AddQuantity(qty, product.StockQty)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Update(ctx, item); err != nil {
			s.logger.Error("Failed to update cart line", zap.Error(err))
			return nil, err
		}
		return &MutationResult{ProductID: productID, Quantity: item.Quantity, Changed: added}, nil

	case errors.Is(err, shared.ErrNotFound):
		capped := qty
		if capped > product.StockQty {
			capped = product.StockQty
		}
		if capped <= 0 {
			return nil, shared.ErrInsufficientStock
		}
		item, err := cart.NewCartItem(userID, productID, capped)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			s.logger.Error("Failed to save cart line", zap.Error(err))
			return nil, err
		}
		return &MutationResult{ProductID: productID, Quantity: item.Quantity, Changed: capped}, nil

	default:
		s.logger.Error("Failed to load cart line", zap.Error(err))
		return nil, err
	}
}

// RemoveUnits removes qty units of a product from the cart. The line is
// deleted once it reaches zero units.
func (s *CartService) RemoveUnits(ctx context.Context, userID, productID uuid.UUID, qty int) (*MutationResult, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	item, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	before := item.Quantity
	if err := item.RemoveQuantity(qty); err != nil {
		return nil, err
	}

	if item.IsEmpty() {
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			s.logger.Error("Failed to delete cart line", zap.Error(err))
			return nil, err
		}
	} else if err := s.cartRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update cart line", zap.Error(err))
		return nil, err
	}

	return &MutationResult{ProductID: productID, Quantity: item.Quantity, Changed: before - item.Quantity}, nil
}

// SetQuantity replaces the line quantity for one product. Setting the
// same quantity twice is a no-op; setting zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*MutationResult, error) {
	if qty < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	item, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load cart line", zap.Error(err))
		return nil, err
	}

	if qty == 0 {
		if item == nil {
			return &MutationResult{ProductID: productID, Quantity: 0}, nil
		}
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		return &MutationResult{ProductID: productID, Quantity: 0, Changed: -item.Quantity}, nil
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	if item == nil {
		capped := qty
		if capped > product.StockQty {
			capped = product.StockQty
		}
		if capped <= 0 {
			return nil, shared.ErrInsufficientStock
		}
		item, err := cart.NewCartItem(userID, productID, capped)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, item); err != nil {
			return nil, err
		}
		return &MutationResult{ProductID: productID, Quantity: item.Quantity, Changed: capped}, nil
	}

	before := item.Quantity
	if err := item.SetQuantity(qty, product.StockQty); err != nil {
		return nil, err
	}

	if item.IsEmpty() {
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
	} else if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return &MutationResult{ProductID: productID, Quantity: item.Quantity, Changed: item.Quantity - before}, nil
}

// Merge folds a guest cart into the user's server-side cart after
// login. Quantities add up per product, capped at stock. Lines for
// missing or unavailable products are reported back as skipped. The
// whole merge runs in one transaction.
func (s *CartService) Merge(ctx context.Context, userID uuid.UUID, lines []MergeLine) (*MergeResult, error) {
	result := &MergeResult{Skipped: []SkippedLine{}}

	err := s.cartRepo.InTx(ctx, func(repo cart.CartRepository) error {
		for _, line := range lines {
			if line.Quantity <= 0 {
				result.Skipped = append(result.Skipped, SkippedLine{ProductID: line.ProductID, Reason: "invalid quantity"})
				continue
			}

			product, err := s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					result.Skipped = append(result.Skipped, SkippedLine{ProductID: line.ProductID, Reason: "product not found"})
					continue
				}
				return err
			}
			if !product.IsAvailable() {
				result.Skipped = append(result.Skipped, SkippedLine{ProductID: line.ProductID, Reason: "product unavailable"})
				continue
			}

			item, err := repo.FindByUserAndProduct(ctx, userID, line.ProductID)
			switch {
			case err == nil:
				if _, err := item.AddQuantity(line.Quantity, product.StockQty); err != nil {
					if errors.Is(err, shared.ErrInsufficientStock) {
						result.Skipped = append(result.Skipped, SkippedLine{ProductID: line.ProductID, Reason: "insufficient stock"})
						continue
					}
					return err
				}
				if err := repo.Update(ctx, item); err != nil {
					return err
				}
				result.Merged++

			case errors.Is(err, shared.ErrNotFound):
				capped := line.Quantity
				if capped > product.StockQty {
					capped = product.StockQty
				}
				if capped <= 0 {
					result.Skipped = append(result.Skipped, SkippedLine{ProductID: line.ProductID, Reason: "insufficient stock"})
					continue
				}
				item, err := cart.NewCartItem(userID, line.ProductID, capped)
				if err != nil {
					return err
				}
				if err := repo.Save(ctx, item); err != nil {
					return err
				}
				result.Merged++

			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cart merge failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Guest cart merged",
		zap.String("user_id", userID.String()),
		zap.Int("merged", result.Merged),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// Clear removes every line from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}
	return nil
}
