package handler

import (
	"errors"
	"net/http"

	"github.com/usmanharun1738/cartar-pos/internal/cart"
	"github.com/usmanharun1738/cartar-pos/internal/middleware"
	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/order"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	store  *cart.Store
	orders order.Service
}

func NewCheckoutController(store *cart.Store, orders order.Service) *CheckoutController {
	return &CheckoutController{store: store, orders: orders}
}

// POST /checkout
func (h *CheckoutController) Checkout(c *gin.Context) {
	var req struct {
		CashReceived string `json:"cash_received"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	cash, err := money.Parse(req.CashReceived)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session := sessionID(c)
	working := h.store.Get(session)

	o, err := h.orders.Checkout(c.Request.Context(), working, order.CheckoutParams{
		UserID:       userID,
		CashReceived: cash,
		Notes:        req.Notes,
	})
	if err != nil {
		var conflict *order.StockConflictError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, cart.ErrCartCompleted):
			c.JSON(http.StatusConflict, errorJSON(err))
		case errors.Is(err, order.ErrInsufficientPayment):
			c.JSON(http.StatusUnprocessableEntity, errorJSON(err))
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":     conflict.Error(),
				"item":      conflict.ItemName,
				"requested": conflict.Requested,
				"remaining": conflict.Remaining,
			})
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	// The sale went through; the next Get starts a fresh cart.
	h.store.Drop(session)

	c.JSON(http.StatusCreated, gin.H{"order": o})
}

// POST /checkout/cancel
func (h *CheckoutController) Cancel(c *gin.Context) {
	working := h.store.Get(sessionID(c))
	if err := working.CancelCheckout(); err != nil {
		c.JSON(http.StatusConflict, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": working.Status()})
}
