package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/usmanharun1738/cartar-pos/internal/order"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	svc order.Service
}

func NewOrderController(svc order.Service) *OrderController {
	return &OrderController{svc: svc}
}

// GET /orders
func (h *OrderController) List(c *gin.Context) {
	filter := order.ListFilter{}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		filter.To = &to
	}
	if raw := c.Query("status"); raw != "" {
		status := raw
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
			return
		}
		filter.Offset = offset
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.svc.GetOrder(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o})
}

// GET /admin/stats
func (h *OrderController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}
