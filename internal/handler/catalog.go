package handler

import (
	"net/http"

	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	products product.Service
}

func NewCatalogController(products product.Service) *CatalogController {
	return &CatalogController{products: products}
}

// GET /catalog
func (h *CatalogController) List(c *gin.Context) {
	var query struct {
		Search     *string `form:"search"`
		CategoryID *uint   `form:"category_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	items, err := h.products.Catalog(c.Request.Context(), product.CatalogFilter{
		Search:     query.Search,
		CategoryID: query.CategoryID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /admin/low-stock
func (h *CatalogController) LowStock(c *gin.Context) {
	items, err := h.products.ListLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
