package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LeonardoCto/myeconomyback/internal/domain"
	"github.com/LeonardoCto/myeconomyback/internal/email"
	"github.com/LeonardoCto/myeconomyback/internal/metrics"
	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/robfig/cron/v3"
)

// overLimiter is the slice of ExpenseRepository the notifier needs.
type overLimiter interface {
	OverLimit(ctx context.Context, month domain.Month) ([]repository.CategorySpend, error)
}

// Notifier periodically compares each user's current-month spending with the
// limits recorded for the same month and emails an overrun notice.
type Notifier struct {
	expenses overLimiter
	email    email.Sender
	logger   *slog.Logger
	cron     *cron.Cron
	now      func() time.Time
}

func NewNotifier(expenses overLimiter, emailSender email.Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		expenses: expenses,
		email:    emailSender,
		logger:   logger.With("component", "alerts"),
		now:      time.Now,
	}
}

// Start schedules the checker with the given cron spec and launches the cron
// runner. Call Stop on shutdown.
func (n *Notifier) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule alert checker: %w", err)
	}
	c.Start()
	n.cron = c
	n.logger.Info("limit alert checker started", "cron", spec)
	return nil
}

// Stop halts the cron runner and waits for an in-flight run to finish.
func (n *Notifier) Stop() {
	if n.cron != nil {
		<-n.cron.Stop().Done()
	}
}

// RunOnce performs a single overrun sweep for the current month.
func (n *Notifier) RunOnce(ctx context.Context) {
	month := domain.MonthOf(n.now())

	overruns, err := n.expenses.OverLimit(ctx, month)
	if err != nil {
		n.logger.ErrorContext(ctx, "over-limit sweep", "month", month.String(), "error", err)
		return
	}

	for _, o := range overruns {
		subject := fmt.Sprintf("Limit exceeded: %s", o.CategoryName)
		body := fmt.Sprintf(
			"<p>Your %s spending this month is %.2f, above the %.2f limit you set.</p>",
			o.CategoryName, o.Spent, o.Limit,
		)
		if err := n.email.Send(ctx, o.UserEmail, subject, body); err != nil {
			n.logger.ErrorContext(ctx, "overrun email", "email", o.UserEmail, "error", err)
			continue
		}
		metrics.AlertsSentTotal.Inc()
	}

	metrics.AlertRunsTotal.Inc()
	n.logger.InfoContext(ctx, "over-limit sweep finished", "month", month.String(), "overruns", len(overruns))
}
