package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LabelHandler struct {
	labelRepo LabelRepositoryInterface
}

func NewLabelHandler(labelRepo LabelRepositoryInterface) *LabelHandler {
	return &LabelHandler{labelRepo: labelRepo}
}

// List returns the shared label namespace
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve labels"})
		return
	}
	c.JSON(http.StatusOK, labels)
}
