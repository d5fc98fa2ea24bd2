package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/usmanharun1738/cartar-pos/internal/middleware"
	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	svc product.Service
}

func NewProductController(svc product.Service) *ProductController {
	return &ProductController{svc: svc}
}

// POST /admin/products/variants/preview
func (h *ProductController) PreviewVariants(c *gin.Context) {
	var req struct {
		OptionIDs []uint          `json:"option_ids"`
		BasePrice decimal.Decimal `json:"base_price"`
		SKUPrefix string          `json:"sku_prefix"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	drafts, err := h.svc.PreviewVariants(c.Request.Context(),
		req.OptionIDs, req.BasePrice, req.SKUPrefix)
	if err != nil {
		if errors.Is(err, product.ErrInvalidSelection) {
			c.JSON(http.StatusBadRequest, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"variants": drafts, "count": len(drafts)})
}

// POST /admin/products
func (h *ProductController) Create(c *gin.Context) {
	var params product.CreateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	created, err := h.svc.CreateProduct(c.Request.Context(), actorID, params)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyProductName),
			errors.Is(err, product.ErrInvalidDraft),
			errors.Is(err, money.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, product.ErrDuplicateSKU):
			c.JSON(http.StatusConflict, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": created})
}

// GET /admin/products/:id
func (h *ProductController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, variants, err := h.svc.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p, "variants": variants})
}

// PATCH /admin/products/:id
func (h *ProductController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var params product.UpdateProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	if err := h.svc.UpdateProduct(c.Request.Context(), actorID, uint(id), params); err != nil {
		switch {
		case errors.Is(err, product.ErrEmptyProductName),
			errors.Is(err, money.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, product.ErrProductNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /admin/products/:id
func (h *ProductController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	if err := h.svc.DeleteProduct(c.Request.Context(), actorID, uint(id)); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PATCH /admin/variants/:id/active
func (h *ProductController) SetVariantActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	if err := h.svc.SetVariantActive(c.Request.Context(), actorID, uint(id), *req.Active); err != nil {
		if errors.Is(err, product.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func itemRef(c *gin.Context) (product.ItemType, uint, bool) {
	itemType := product.ItemType(c.Param("type"))
	if itemType != product.ItemTypeProduct && itemType != product.ItemTypeVariant {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item type"})
		return "", 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return "", 0, false
	}
	return itemType, uint(id), true
}

// PATCH /admin/items/:type/:id/price
func (h *ProductController) ChangePrice(c *gin.Context) {
	itemType, id, ok := itemRef(c)
	if !ok {
		return
	}

	var req struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	if err := h.svc.ChangePrice(c.Request.Context(), actorID, itemType, id, req.Price); err != nil {
		switch {
		case errors.Is(err, money.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, product.ErrItemNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PATCH /admin/items/:type/:id/stock
func (h *ProductController) AdjustStock(c *gin.Context) {
	itemType, id, ok := itemRef(c)
	if !ok {
		return
	}

	var req struct {
		StockQuantity *int `json:"stock_quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	actorID, _ := middleware.UserIDFrom(c)

	if err := h.svc.AdjustStock(c.Request.Context(), actorID, itemType, id, *req.StockQuantity); err != nil {
		if errors.Is(err, product.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
