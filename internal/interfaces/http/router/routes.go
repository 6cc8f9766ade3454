package router

import (
	"github.com/gin-gonic/gin"
	"github.com/momohub/backend/internal/interfaces/http/handler"
	"github.com/momohub/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the domain handlers the API exposes
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	Cart    *handler.CartHandler
	User    *handler.UserHandler
}

// Setup wires every storefront endpoint onto the engine under /api/v1.
// jwtAuth authenticates routes that need a logged-in user; the catalog
// browsing routes stay public.
func Setup(engine *gin.Engine, h Handlers, jwtAuth gin.HandlerFunc) *Router {
	r := NewRouter(engine)

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/logout", jwtAuth, h.Auth.Logout).
		POST("/forgotPassword", h.Auth.ForgotPassword).
		POST("/verifyOtp", h.Auth.VerifyOtp).
		POST("/resetPassword", h.Auth.ResetPassword)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		POST("", jwtAuth, middleware.RequireAdmin(), h.Product.Create).
		PUT("/:id", jwtAuth, middleware.RequireAdmin(), h.Product.Update).
		PATCH("/:id", jwtAuth, middleware.RequireAdmin(), h.Product.Update).
		DELETE("/:id", jwtAuth, middleware.RequireAdmin(), h.Product.Delete)

	reviews := NewDomainGroup("reviews", "/reviews")
	reviews.GET("/:id", h.Review.ListByProduct).
		GET("", jwtAuth, h.Review.ListMine).
		POST("/:id", jwtAuth, h.Review.Create).
		DELETE("/:id", jwtAuth, h.Review.Delete)

	cart := NewDomainGroup("cart", "/cart")
	cart.Use(jwtAuth)
	cart.GET("", h.Cart.Get).
		POST("/merge", h.Cart.Merge).
		POST("/:id", h.Cart.AddUnits).
		PUT("/:id", h.Cart.SetQuantity).
		DELETE("/:id", h.Cart.RemoveUnits).
		DELETE("", h.Cart.Clear)

	users := NewDomainGroup("users", "/users")
	users.Use(jwtAuth)
	users.GET("/me", h.User.Me).
		GET("", middleware.RequireAdmin(), h.User.List).
		GET("/:id", middleware.RequireAdmin(), h.User.GetByID).
		DELETE("/:id", middleware.RequireAdmin(), h.User.Delete)

	r.Register(auth).
		Register(products).
		Register(reviews).
		Register(cart).
		Register(users)
	r.Setup()

	return r
}
