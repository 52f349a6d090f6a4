package repository

import (
	"context"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
)

// CategorySpend is one user/category total for a month, joined with the
// limit recorded for that month.
type CategorySpend struct {
	UserID       string
	UserEmail    string
	CategoryID   string
	CategoryName string
	Spent        float64
	Limit        float64
}

// Usecases depend on these interfaces, not on the pgx implementations, so
// tests can inject fakes and the storage engine stays swappable.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Expense, error)
	ListByMonth(ctx context.Context, userID string, month domain.Month) ([]*domain.Expense, error)

	// DeleteIfOpen re-reads the stored reference month and deletes the row in
	// one transaction, so the month cannot change between check and delete.
	// A stored month earlier than current aborts with domain.ErrPastPeriod.
	DeleteIfOpen(ctx context.Context, id, userID string, current domain.Month) error

	// OverLimit reports, per user and category, spending in the given month
	// that exceeds the limit recorded for the same month.
	OverLimit(ctx context.Context, month domain.Month) ([]CategorySpend, error)
}

type LimitRepository interface {
	Create(ctx context.Context, limit *domain.Limit) (*domain.Limit, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Limit, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Limit, error)
	DeleteIfOpen(ctx context.Context, id, userID string, current domain.Month) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
}
