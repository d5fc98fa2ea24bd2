package handler

import (
	"net/http"

	"github.com/usmanharun1738/cartar-pos/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Catalog   *CatalogController
	Cart      *CartController
	Checkout  *CheckoutController
	Category  *CategoryController
	Variation *VariationController
	Product   *ProductController
	Order     *OrderController
	Audit     *AuditController
}

// NewRouter wires the HTTP surface: request ids and logging on every
// request, JWT auth on the sales endpoints, and a manager/admin gate on
// the back-office group.
func NewRouter(jwtSecret string, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.RateLimitMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Sales floor: any authenticated terminal user.
	sales := r.Group("", middleware.AuthMiddleware(jwtSecret))
	{
		sales.GET("/catalog", ctrl.Catalog.List)
		sales.GET("/categories", ctrl.Category.List)

		sales.GET("/cart", ctrl.Cart.Get)
		sales.POST("/cart/items", ctrl.Cart.AddItem)
		sales.PATCH("/cart/items", ctrl.Cart.SetQuantity)
		sales.DELETE("/cart/items", ctrl.Cart.RemoveItem)
		sales.DELETE("/cart", ctrl.Cart.Clear)

		sales.POST("/checkout", ctrl.Checkout.Checkout)
		sales.POST("/checkout/cancel", ctrl.Checkout.Cancel)

		sales.GET("/orders", ctrl.Order.List)
		sales.GET("/orders/:id", ctrl.Order.Detail)
	}

	// Back office: catalog management, audit, stats.
	admin := r.Group("/admin",
		middleware.AuthMiddleware(jwtSecret, middleware.RoleManager, middleware.RoleAdmin))
	{
		admin.POST("/categories", ctrl.Category.Create)
		admin.PATCH("/categories/:id", ctrl.Category.Update)
		admin.PATCH("/categories/:id/active", ctrl.Category.SetActive)

		admin.GET("/variations", ctrl.Variation.ListTypes)
		admin.POST("/variations", ctrl.Variation.CreateType)
		admin.PATCH("/variations/:id", ctrl.Variation.UpdateType)
		admin.PATCH("/variations/:id/active", ctrl.Variation.SetTypeActive)
		admin.POST("/variation-options", ctrl.Variation.CreateOption)
		admin.PATCH("/variation-options/:id", ctrl.Variation.UpdateOption)
		admin.PATCH("/variation-options/:id/active", ctrl.Variation.SetOptionActive)

		admin.POST("/products", ctrl.Product.Create)
		admin.POST("/products/variants/preview", ctrl.Product.PreviewVariants)
		admin.GET("/products/:id", ctrl.Product.Detail)
		admin.PATCH("/products/:id", ctrl.Product.Update)
		admin.DELETE("/products/:id", ctrl.Product.Delete)
		admin.GET("/products/:id/audit", ctrl.Audit.ListByProduct)
		admin.PATCH("/items/:type/:id/price", ctrl.Product.ChangePrice)
		admin.PATCH("/items/:type/:id/stock", ctrl.Product.AdjustStock)
		admin.PATCH("/variants/:id/active", ctrl.Product.SetVariantActive)

		admin.GET("/low-stock", ctrl.Catalog.LowStock)
		admin.GET("/stats", ctrl.Order.Stats)
	}

	return r
}
