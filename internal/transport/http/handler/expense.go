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

type ExpenseHandler struct {
	expenseUsecase *usecase.ExpenseUsecase
	logger         *slog.Logger
}

func NewExpenseHandler(expenseUsecase *usecase.ExpenseUsecase, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUsecase: expenseUsecase,
		logger:         logger.With("component", "expense_handler"),
	}
}

type createExpenseRequest struct {
	Description    string  `json:"description"     binding:"required,max=256"`
	Amount         float64 `json:"amount"          binding:"required,gt=0"`
	ReferenceMonth string  `json:"reference_month" binding:"required"`
	CategoryID     string  `json:"category_id"     binding:"required,uuid"`
}

type expenseResponse struct {
	ID             string    `json:"id"`
	CategoryID     string    `json:"category_id"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	ReferenceMonth string    `json:"reference_month"`
	CreatedAt      time.Time `json:"created_at"`
}

func toExpenseResponse(e *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:             e.ID,
		CategoryID:     e.CategoryID,
		Description:    e.Description,
		Amount:         e.Amount,
		ReferenceMonth: e.ReferenceMonth.String(),
		CreatedAt:      e.CreatedAt,
	}
}

// POST /expense/create
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := domain.ParseReferenceMonth(req.ReferenceMonth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrBadReferenceMonth.Error()})
		return
	}

	expense, err := h.expenseUsecase.CreateExpense(c.Request.Context(), usecase.CreateExpenseInput{
		UserID:         middleware.Principal(c).UserID,
		CategoryID:     req.CategoryID,
		Description:    req.Description,
		Amount:         req.Amount,
		ReferenceMonth: month,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPastPeriod) {
			metrics.GuardRejectionsTotal.WithLabelValues("expense", "create").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errPastPeriod})
			return
		}
		h.logger.Error("create expense", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": toExpenseResponse(expense)})
}

// DELETE /expense/delete/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.expenseUsecase.DeleteExpense(c.Request.Context(), id, middleware.Principal(c).UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPastPeriod):
			metrics.GuardRejectionsTotal.WithLabelValues("expense", "delete").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errPastPeriod})
		case errors.Is(err, domain.ErrExpenseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errExpenseNotFound})
		default:
			h.logger.Error("delete expense", "expense_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /expense/month/:month — the month parameter uses the same DD-MM-YYYY
// format as reference_month; only its month and year are used.
func (h *ExpenseHandler) ListByMonth(c *gin.Context) {
	month, err := domain.ParseReferenceMonth(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrBadReferenceMonth.Error()})
		return
	}

	expenses, err := h.expenseUsecase.ListByMonth(c.Request.Context(), middleware.Principal(c).UserID, month)
	if err != nil {
		h.logger.Error("list expenses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	if len(expenses) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoExpenses})
		return
	}

	items := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		items[i] = toExpenseResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"expenses": items})
}
