package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/momohub/backend/internal/application/catalog"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// imageFormField is the multipart field carrying the product image
const imageFormField = "productImage"

// ProductHandler handles menu management HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// List returns the menu, optionally filtered by category or search term
func (h *ProductHandler) List(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	if req.MainType != "" {
		infos, err := h.productService.ListByMainType(c.Request.Context(), req.MainType, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, infos)
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	info, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Create adds a product to the menu (admin only)
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	status := req.Status
	if status == "" {
		status = "available"
	}

	upload, closeUpload, err := h.imageUpload(c)
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeUpload()

	info, err := h.productService.Create(c.Request.Context(), catalogapp.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		StockQty:    req.StockQty,
		Status:      status,
		MainType:    req.MainType,
		Image:       upload,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// Update applies a partial change to a product (admin only)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	input := catalogapp.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		StockQty:    req.StockQty,
		Status:      req.Status,
		MainType:    req.MainType,
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			h.BadRequest(c, "Invalid price")
			return
		}
		input.Price = &price
	}

	upload, closeUpload, err := h.imageUpload(c)
	if err != nil {
		h.BadRequest(c, "Invalid image upload")
		return
	}
	defer closeUpload()
	input.Image = upload

	info, err := h.productService.Update(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Delete removes a product from the menu (admin only)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Product deleted")
}

// imageUpload opens the optional image file part. The returned cleanup
// is safe to call even when no file was sent.
func (h *ProductHandler) imageUpload(c *gin.Context) (*catalogapp.ImageUpload, func(), error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		// no file part is fine; the service falls back to the placeholder
		return nil, func() {}, nil
	}

	var file multipart.File
	file, err = fileHeader.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return &catalogapp.ImageUpload{
		Filename: fileHeader.Filename,
		Body:     file,
	}, func() { _ = file.Close() }, nil
}
