package handler

import (
	"net/http"
	"strconv"

	"github.com/usmanharun1738/cartar-pos/internal/audit"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	auditor audit.Recorder
}

func NewAuditController(auditor audit.Recorder) *AuditController {
	return &AuditController{auditor: auditor}
}

// GET /admin/products/:id/audit
func (h *AuditController) ListByProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	entries, err := h.auditor.ListByProduct(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorJSON(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
