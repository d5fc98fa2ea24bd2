package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/usmanharun1738/cartar-pos/internal/category"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	svc category.Service
}

func NewCategoryController(svc category.Service) *CategoryController {
	return &CategoryController{svc: svc}
}

// GET /categories
func (h *CategoryController) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	categories, err := h.svc.GetCategories(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /admin/categories
func (h *CategoryController) Create(c *gin.Context) {
	var params category.CreateCategoryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	created, err := h.svc.AddCategory(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, category.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": created})
}

// PATCH /admin/categories/:id
func (h *CategoryController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var params category.UpdateCategoryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}
	params.ID = uint(id)

	updated, err := h.svc.UpdateCategory(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": updated})
}

// PATCH /admin/categories/:id/active
func (h *CategoryController) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON(err))
		return
	}

	if err := h.svc.SetCategoryActive(c.Request.Context(), uint(id), *req.Active); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, errorJSON(err))
			return
		}
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
