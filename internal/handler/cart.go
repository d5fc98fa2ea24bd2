package handler

import (
	"errors"
	"net/http"

	"github.com/usmanharun1738/cartar-pos/internal/cart"
	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CartController struct {
	store    *cart.Store
	products product.Service
	taxRate  decimal.Decimal
}

func NewCartController(store *cart.Store, products product.Service, taxRate decimal.Decimal) *CartController {
	return &CartController{store: store, products: products, taxRate: taxRate}
}

func (h *CartController) cartView(c *cart.Cart) gin.H {
	return gin.H{
		"status": c.Status(),
		"lines":  c.Lines(),
		"totals": c.Totals(h.taxRate),
	}
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView(h.store.Get(sessionID(c))))
}

// POST /cart/items
func (h *CartController) AddItem(c *gin.Context) {
	var req struct {
		ItemType product.ItemType `json:"item_type" binding:"required"`
		RefID    uint             `json:"ref_id" binding:"required"`
		Quantity int              `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	item, err := h.products.GetSellable(c.Request.Context(), req.ItemType, req.RefID)
	if err != nil {
		if errors.Is(err, product.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	working := h.store.Get(sessionID(c))
	if _, err := working.AddItem(item, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrOutOfStock):
			c.JSON(http.StatusConflict, errorJSON(err))
		case errors.Is(err, cart.ErrCartLocked), errors.Is(err, cart.ErrCartCompleted):
			c.JSON(http.StatusConflict, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, h.cartView(working))
}

// PATCH /cart/items
func (h *CartController) SetQuantity(c *gin.Context) {
	var req struct {
		Key      string `json:"key" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	working := h.store.Get(sessionID(c))
	if err := working.SetQuantity(req.Key, req.Quantity); err != nil {
		switch {
		case errors.Is(err, cart.ErrLineNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		case errors.Is(err, cart.ErrCartLocked), errors.Is(err, cart.ErrCartCompleted):
			c.JSON(http.StatusConflict, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, h.cartView(working))
}

// DELETE /cart/items?key=variant:9
func (h *CartController) RemoveItem(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	working := h.store.Get(sessionID(c))
	if err := working.Remove(key); err != nil {
		c.JSON(http.StatusConflict, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, h.cartView(working))
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	working := h.store.Get(sessionID(c))
	if err := working.Clear(); err != nil {
		c.JSON(http.StatusConflict, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, h.cartView(working))
}
