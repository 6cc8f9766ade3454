package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/momohub/backend/internal/application/cart"
)

// CartQuantityRequest carries a unit count for cart mutations
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

// SetQuantityRequest carries the target quantity for one cart line
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// MergeCartRequest carries a guest cart to fold into the server cart
type MergeCartRequest struct {
	Items []MergeCartLine `json:"items" binding:"required,dive"`
}

// MergeCartLine is one guest cart line. Quantity is deliberately
// unvalidated here; zero or negative lines are skipped and reported
// by the merge instead of failing the whole payload.
type MergeCartLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CartHandler handles shopping cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get returns the authenticated user's cart with totals
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AddUnits adds units of the product named in the path. The body may
// carry a quantity; absent, one unit is added.
func (h *CartHandler) AddUnits(c *gin.Context) {
	userID, productID, ok := h.cartLineIDs(c)
	if !ok {
		return
	}

	qty, ok := h.bindQuantity(c)
	if !ok {
		return
	}

	result, err := h.cartService.AddUnits(c.Request.Context(), userID, productID, qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveUnits removes units of the product named in the path
func (h *CartHandler) RemoveUnits(c *gin.Context) {
	userID, productID, ok := h.cartLineIDs(c)
	if !ok {
		return
	}

	qty, ok := h.bindQuantity(c)
	if !ok {
		return
	}

	result, err := h.cartService.RemoveUnits(c.Request.Context(), userID, productID, qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SetQuantity replaces the line quantity for the product named in the
// path. Zero removes the line.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	userID, productID, ok := h.cartLineIDs(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.cartService.SetQuantity(c.Request.Context(), userID, productID, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Merge folds a guest cart into the user's server-side cart
func (h *CartHandler) Merge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	lines := make([]cartapp.MergeLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = cartapp.MergeLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	result, err := h.cartService.Merge(c.Request.Context(), userID, lines)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Clear empties the user's cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Message(c, "Cart cleared")
}

func (h *CartHandler) cartLineIDs(c *gin.Context) (userID, productID uuid.UUID, ok bool) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return uuid.Nil, uuid.Nil, false
	}

	userID, err = getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, productID, true
}

func (h *CartHandler) bindQuantity(c *gin.Context) (int, bool) {
	qty := 1
	if c.Request.ContentLength > 0 {
		var req CartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return 0, false
		}
		if req.Quantity > 0 {
			qty = req.Quantity
		}
	}
	return qty, true
}
