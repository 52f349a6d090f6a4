package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
)

type LimitUsecase struct {
	repo repository.LimitRepository
	now  func() time.Time
}

func NewLimitUsecase(repo repository.LimitRepository) *LimitUsecase {
	return &LimitUsecase{repo: repo, now: time.Now}
}

type CreateLimitInput struct {
	UserID         string
	CategoryID     string
	Amount         float64
	ReferenceMonth domain.Month
}

func (u *LimitUsecase) CreateLimit(ctx context.Context, input CreateLimitInput) (*domain.Limit, error) {
	if err := domain.CheckOpenPeriod(input.ReferenceMonth, u.now()); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &domain.Limit{
		UserID:         input.UserID,
		CategoryID:     input.CategoryID,
		Amount:         input.Amount,
		ReferenceMonth: input.ReferenceMonth,
	})
	if err != nil {
		return nil, fmt.Errorf("create limit: %w", err)
	}
	return created, nil
}

// DeleteLimit derives the month from the persisted record; the client only
// supplies the id.
func (u *LimitUsecase) DeleteLimit(ctx context.Context, id, userID string) error {
	return u.repo.DeleteIfOpen(ctx, id, userID, domain.MonthOf(u.now()))
}

func (u *LimitUsecase) ListLimits(ctx context.Context, userID string) ([]*domain.Limit, error) {
	limits, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	return limits, nil
}
