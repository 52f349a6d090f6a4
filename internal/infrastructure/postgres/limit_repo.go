package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LimitRepository struct {
	pool *pgxpool.Pool
}

func NewLimitRepository(pool *pgxpool.Pool) *LimitRepository {
	return &LimitRepository{pool: pool}
}

func (r *LimitRepository) Create(ctx context.Context, limit *domain.Limit) (*domain.Limit, error) {
	query := `
		INSERT INTO user_limits (user_id, category_id, amount, reference_month)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, category_id, amount, reference_month, created_at`

	row := r.pool.QueryRow(ctx, query,
		limit.UserID,
		limit.CategoryID,
		limit.Amount,
		limit.ReferenceMonth.Date(),
	)
	return scanLimit(row)
}

func (r *LimitRepository) FindByID(ctx context.Context, id, userID string) (*domain.Limit, error) {
	query := `
		SELECT id, user_id, category_id, amount, reference_month, created_at
		FROM user_limits
		WHERE id = $1 AND user_id = $2`

	return scanLimit(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *LimitRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Limit, error) {
	query := `
		SELECT id, user_id, category_id, amount, reference_month, created_at
		FROM user_limits
		WHERE user_id = $1
		ORDER BY reference_month DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	defer rows.Close()

	var limits []*domain.Limit
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

func (r *LimitRepository) DeleteIfOpen(ctx context.Context, id, userID string, current domain.Month) error {
	return deleteIfOpen(ctx, r.pool, "user_limits", id, userID, current, domain.ErrLimitNotFound)
}

func scanLimit(row pgx.Row) (*domain.Limit, error) {
	var (
		l   domain.Limit
		ref time.Time
	)
	err := row.Scan(&l.ID, &l.UserID, &l.CategoryID, &l.Amount, &ref, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLimitNotFound
		}
		return nil, fmt.Errorf("scan limit: %w", err)
	}
	l.ReferenceMonth = domain.MonthOf(ref)
	return &l, nil
}
