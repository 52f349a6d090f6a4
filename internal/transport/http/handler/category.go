package handler

import (
	"log/slog"
	"net/http"

	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

func NewCategoryHandler(categories repository.CategoryRepository, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger.With("component", "category_handler")}
}

// GET /categories — public lookup table, no auth.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]gin.H, len(categories))
	for i, cat := range categories {
		items[i] = gin.H{"id": cat.ID, "name": cat.Name}
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}
