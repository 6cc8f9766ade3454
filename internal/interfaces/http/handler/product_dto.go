package handler

// CreateProductRequest is the multipart form payload for adding a menu
// item. The image arrives separately as the "productImage" file part.
type CreateProductRequest struct {
	Name        string `form:"name" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required"`
	Price       string `form:"price" binding:"required"`
	StockQty    int    `form:"stock_qty" binding:"omitempty,min=0"`
	Status      string `form:"status" binding:"omitempty,oneof=available unavailable"`
	MainType    string `form:"main_type" binding:"required,oneof=Veg Chicken Buff Pork"`
}

// UpdateProductRequest is the multipart form payload for a partial
// product update. Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string `form:"name" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description" binding:"omitempty"`
	Price       *string `form:"price"`
	StockQty    *int    `form:"stock_qty" binding:"omitempty,min=0"`
	Status      *string `form:"status" binding:"omitempty,oneof=available unavailable"`
	MainType    *string `form:"main_type" binding:"omitempty,oneof=Veg Chicken Buff Pork"`
}

// ListProductsRequest holds catalog browsing query parameters
type ListProductsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	MainType string `form:"main_type" binding:"omitempty,oneof=Veg Chicken Buff Pork"`
	Status   string `form:"status" binding:"omitempty,oneof=available unavailable"`
}
