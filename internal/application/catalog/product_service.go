package catalog

import (
	"context"
	"path"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/momohub/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// ProductService handles menu management and browsing
type ProductService struct {
	productRepo catalog.ProductRepository
	images      storage.ImageStorage
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, images storage.ImageStorage, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		images:      images,
		logger:      logger,
	}
}

// List returns a page of products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductInfo], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to count products", zap.Error(err))
		return nil, err
	}

	infos := make([]ProductInfo, len(products))
	for i := range products {
		infos[i] = NewProductInfo(&products[i])
	}

	result := shared.NewPaginated(infos, total, filter.Page, filter.Limit())
	return &result, nil
}

// ListByMainType returns products in one food category
func (s *ProductService) ListByMainType(ctx context.Context, mainType string, filter shared.Filter) ([]ProductInfo, error) {
	mt := catalog.MainType(mainType)
	if err := catalog.ValidateMainType(mt); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByMainType(ctx, mt, filter)
	if err != nil {
		s.logger.Error("Failed to list products by type", zap.Error(err))
		return nil, err
	}

	infos := make([]ProductInfo, len(products))
	for i := range products {
		infos[i] = NewProductInfo(&products[i])
	}
	return infos, nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := NewProductInfo(product)
	return &info, nil
}

// Create adds a product to the menu. A missing image falls back to the
// storefront placeholder.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductInfo, error) {
	imagePath, err := s.storeImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		input.Name,
		input.Description,
		input.Price,
		input.StockQty,
		catalog.ProductStatus(input.Status),
		catalog.MainType(input.MainType),
		imagePath,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("Failed to save product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	info := NewProductInfo(product)
	return &info, nil
}

// Update applies a partial change to a product. Only non-nil fields of
// the input are touched.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductInfo, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	if input.Name != nil {
		name = *input.Name
	}
	if input.Description != nil {
		description = *input.Description
	}
	if input.Name != nil || input.Description != nil {
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if input.Price != nil {
		if err := product.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.StockQty != nil {
		if err := product.SetStockQty(*input.StockQty); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*input.Status)); err != nil {
			return nil, err
		}
	}
	if input.MainType != nil {
		if err := product.SetMainType(catalog.MainType(*input.MainType)); err != nil {
			return nil, err
		}
	}

	if input.Image != nil {
		imagePath, err := s.storeImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		product.SetImagePath(imagePath)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID.String()))

	info := NewProductInfo(product)
	return &info, nil
}

// Delete removes a product. Cart lines and reviews referencing it are
// removed by the database cascade.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort; an orphaned image file is not worth failing the delete
	if product.ImagePath != catalog.PlaceholderImageURL {
		if err := s.images.Delete(ctx, path.Base(product.ImagePath)); err != nil {
			s.logger.Warn("Failed to remove product image",
				zap.String("product_id", id.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) storeImage(ctx context.Context, upload *ImageUpload) (string, error) {
	if upload == nil {
		return "", nil
	}

	key, contentType, err := storage.NewImageKey(upload.Filename)
	if err != nil {
		return "", err
	}

	publicPath, err := s.images.Save(ctx, key, contentType, upload.Body)
	if err != nil {
		s.logger.Error("Failed to store product image", zap.Error(err))
		return "", shared.NewDomainError("INTERNAL_ERROR", "Failed to store image")
	}
	return publicPath, nil
}
