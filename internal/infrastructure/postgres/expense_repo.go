package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, category_id, description, amount, reference_month)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category_id, description, amount, reference_month, created_at`

	row := r.pool.QueryRow(ctx, query,
		expense.UserID,
		expense.CategoryID,
		expense.Description,
		expense.Amount,
		expense.ReferenceMonth.Date(),
	)
	return scanExpense(row)
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id, userID string) (*domain.Expense, error) {
	query := `
		SELECT id, user_id, category_id, description, amount, reference_month, created_at
		FROM expenses
		WHERE id = $1 AND user_id = $2`

	return scanExpense(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *ExpenseRepository) ListByMonth(ctx context.Context, userID string, month domain.Month) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, category_id, description, amount, reference_month, created_at
		FROM expenses
		WHERE user_id = $1
		  AND reference_month >= $2 AND reference_month < $3
		ORDER BY created_at DESC`

	from := month.Date()
	rows, err := r.pool.Query(ctx, query, userID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteIfOpen locks the row, re-checks its reference month against the
// current month, and deletes it — all inside one transaction, so a
// concurrent update cannot slip between check and delete.
func (r *ExpenseRepository) DeleteIfOpen(ctx context.Context, id, userID string, current domain.Month) error {
	return deleteIfOpen(ctx, r.pool, "expenses", id, userID, current, domain.ErrExpenseNotFound)
}

func (r *ExpenseRepository) OverLimit(ctx context.Context, month domain.Month) ([]repository.CategorySpend, error) {
	query := `
		SELECT u.id, u.email, c.id, c.name, SUM(e.amount) AS spent, l.amount AS cap
		FROM expenses e
		JOIN users u ON u.id = e.user_id
		JOIN categories c ON c.id = e.category_id
		JOIN user_limits l
		  ON l.user_id = e.user_id
		 AND l.category_id = e.category_id
		 AND l.reference_month = $1
		WHERE e.reference_month = $1
		GROUP BY u.id, u.email, c.id, c.name, l.amount
		HAVING SUM(e.amount) > l.amount`

	rows, err := r.pool.Query(ctx, query, month.Date())
	if err != nil {
		return nil, fmt.Errorf("over-limit query: %w", err)
	}
	defer rows.Close()

	var out []repository.CategorySpend
	for rows.Next() {
		var s repository.CategorySpend
		if err := rows.Scan(&s.UserID, &s.UserEmail, &s.CategoryID, &s.CategoryName, &s.Spent, &s.Limit); err != nil {
			return nil, fmt.Errorf("scan over-limit row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e   domain.Expense
		ref time.Time
	)
	err := row.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Description, &e.Amount, &ref, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	e.ReferenceMonth = domain.MonthOf(ref)
	return &e, nil
}

// deleteIfOpen implements the shared fetch-month → guard → delete transaction
// for both expenses and user_limits.
func deleteIfOpen(ctx context.Context, pool *pgxpool.Pool, table, id, userID string, current domain.Month, notFound error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ref time.Time
	err = tx.QueryRow(ctx,
		`SELECT reference_month FROM `+table+` WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	).Scan(&ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound
		}
		return fmt.Errorf("fetch reference month: %w", err)
	}

	if domain.MonthOf(ref).Before(current) {
		return domain.ErrPastPeriod
	}

	if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("delete row: %w", err)
	}

	return tx.Commit(ctx)
}
