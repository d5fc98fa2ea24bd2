package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/usmanharun1738/cartar-pos/internal/variation"

	"github.com/gin-gonic/gin"
)

type VariationController struct {
	svc variation.Service
}

func NewVariationController(svc variation.Service) *VariationController {
	return &VariationController{svc: svc}
}

// GET /admin/variations
func (h *VariationController) ListTypes(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	types, err := h.svc.GetTypes(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"variation_types": types})
}

// POST /admin/variations
func (h *VariationController) CreateType(c *gin.Context) {
	var params variation.CreateTypeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	created, err := h.svc.CreateType(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, variation.ErrEmptyTypeName) {
			c.JSON(http.StatusBadRequest, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variation_type": created})
}

// PATCH /admin/variations/:id
func (h *VariationController) UpdateType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation type id"})
		return
	}

	var params variation.UpdateTypeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	updated, err := h.svc.UpdateType(c.Request.Context(), uint(id), params)
	if err != nil {
		switch {
		case errors.Is(err, variation.ErrEmptyTypeName):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, variation.ErrTypeNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"variation_type": updated})
}

// PATCH /admin/variations/:id/active
func (h *VariationController) SetTypeActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation type id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	if err := h.svc.SetTypeActive(c.Request.Context(), uint(id), *req.Active); err != nil {
		if errors.Is(err, variation.ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /admin/variation-options
func (h *VariationController) CreateOption(c *gin.Context) {
	var params variation.CreateOptionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	created, err := h.svc.CreateOption(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, variation.ErrEmptyOptionName),
			errors.Is(err, variation.ErrEmptyCode),
			errors.Is(err, variation.ErrCodeTooLong):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, variation.ErrTypeNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"variation_option": created})
}

// PATCH /admin/variation-options/:id
func (h *VariationController) UpdateOption(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation option id"})
		return
	}

	var params variation.UpdateOptionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	updated, err := h.svc.UpdateOption(c.Request.Context(), uint(id), params)
	if err != nil {
		switch {
		case errors.Is(err, variation.ErrEmptyOptionName),
			errors.Is(err, variation.ErrEmptyCode),
			errors.Is(err, variation.ErrCodeTooLong):
			c.JSON(http.StatusBadRequest, errorJSON(err))
		case errors.Is(err, variation.ErrOptionNotFound):
			c.JSON(http.StatusNotFound, errorJSON(err))
		default:
			c.JSON(http.StatusInternalServerError, errorJSON(err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"variation_option": updated})
}

// PATCH /admin/variation-options/:id/active
func (h *VariationController) SetOptionActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation option id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	if err := h.svc.SetOptionActive(c.Request.Context(), uint(id), *req.Active); err != nil {
		if errors.Is(err, variation.ErrOptionNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
