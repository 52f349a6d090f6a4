package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/metrics"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/middleware"
	"github.com/LeonardoCto/myeconomyback/internal/usecase"
	"github.com/gin-gonic/gin"
)

type LimitHandler struct {
	limitUsecase *usecase.LimitUsecase
	logger       *slog.Logger
}

func NewLimitHandler(limitUsecase *usecase.LimitUsecase, logger *slog.Logger) *LimitHandler {
	return &LimitHandler{
		limitUsecase: limitUsecase,
		logger:       logger.With("component", "limit_handler"),
	}
}

type createLimitRequest struct {
	Amount         float64 `json:"amount"          binding:"required,gt=0"`
	ReferenceMonth string  `json:"reference_month" binding:"required"`
	CategoryID     string  `json:"category_id"     binding:"required,uuid"`
}

type limitResponse struct {
	ID             string    `json:"id"`
	CategoryID     string    `json:"category_id"`
	Amount         float64   `json:"amount"`
	ReferenceMonth string    `json:"reference_month"`
	CreatedAt      time.Time `json:"created_at"`
}

func toLimitResponse(l *domain.Limit) limitResponse {
	return limitResponse{
		ID:             l.ID,
		CategoryID:     l.CategoryID,
		Amount:         l.Amount,
		ReferenceMonth: l.ReferenceMonth.String(),
		CreatedAt:      l.CreatedAt,
	}
}

// POST /limit/create
func (h *LimitHandler) Create(c *gin.Context) {
	var req createLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := domain.ParseReferenceMonth(req.ReferenceMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrBadReferenceMonth.Error()})
		return
	}

	limit, err := h.limitUsecase.CreateLimit(c.Request.Context(), usecase.CreateLimitInput{
		UserID:         middleware.Principal(c).UserID,
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		ReferenceMonth: month,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPastPeriod) {
			metrics.GuardRejectionsTotal.WithLabelValues("limit", "create").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errPastPeriod})
			return
		}
		h.logger.Error("create limit", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"limit": toLimitResponse(limit)})
}

// DELETE /limit/delete/:id
func (h *LimitHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.limitUsecase.DeleteLimit(c.Request.Context(), id, middleware.Principal(c).UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPastPeriod):
			metrics.GuardRejectionsTotal.WithLabelValues("limit", "delete").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errPastPeriod})
		case errors.Is(err, domain.ErrLimitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errLimitNotFound})
		default:
			h.logger.Error("delete limit", "limit_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /limits
func (h *LimitHandler) List(c *gin.Context) {
	limits, err := h.limitUsecase.ListLimits(c.Request.Context(), middleware.Principal(c).UserID)
	if err != nil {
		h.logger.Error("list limits", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]limitResponse, len(limits))
	for i, l := range limits {
		items[i] = toLimitResponse(l)
	}
	c.JSON(http.StatusOK, gin.H{"limits": items})
}
