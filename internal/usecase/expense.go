package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
)

type ExpenseUsecase struct {
	repo repository.ExpenseRepository

	// now is swapped in tests to pin the current month.
	now func() time.Time
}

func NewExpenseUsecase(repo repository.ExpenseRepository) *ExpenseUsecase {
	return &ExpenseUsecase{repo: repo, now: time.Now}
}

type CreateExpenseInput struct {
	UserID         string
	CategoryID     string
	Description    string
	Amount         float64
	ReferenceMonth domain.Month
}

// CreateExpense persists a new expense after the open-period check. The check
// runs against the wall clock at call time; a closed reference month means
// nothing is written.
func (u *ExpenseUsecase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	if err := domain.CheckOpenPeriod(input.ReferenceMonth, u.now()); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &domain.Expense{
		UserID:         input.UserID,
		CategoryID:     input.CategoryID,
		Description:    input.Description,
		Amount:         input.Amount,
		ReferenceMonth: input.ReferenceMonth,
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

// DeleteExpense removes an expense the principal owns. The reference month is
// taken from the stored row, not from client input, and the openness check is
// re-evaluated at delete time inside the repository transaction.
func (u *ExpenseUsecase) DeleteExpense(ctx context.Context, id, userID string) error {
	return u.repo.DeleteIfOpen(ctx, id, userID, domain.MonthOf(u.now()))
}

func (u *ExpenseUsecase) ListByMonth(ctx context.Context, userID string, month domain.Month) ([]*domain.Expense, error) {
	expenses, err := u.repo.ListByMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
