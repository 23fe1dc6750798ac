// Package scheduler runs the periodic insight sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/application/usecase/insight"
)

// sweepTimeout bounds one full sweep across all users.
const sweepTimeout = 10 * time.Minute

// Scheduler manages the daily insight generation sweep. One user failing
// never stops the sweep for the rest.
type Scheduler struct {
	cron             *cron.Cron
	transactions     adapter.TransactionReader
	generateInsights *insight.GenerateInsightsUseCase
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	transactions adapter.TransactionReader,
	generateInsights *insight.GenerateInsightsUseCase,
) *Scheduler {
	return &Scheduler{
		cron:             cron.New(cron.WithSeconds()),
		transactions:     transactions,
		generateInsights: generateInsights,
	}
}

// Register registers the insight sweep at the given cron spec.
func (s *Scheduler) Register(sweepCron string) error {
	if _, err := s.cron.AddFunc(sweepCron, s.insightSweep); err != nil {
		return fmt.Errorf("register insight sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("Scheduler stopped")
}

// RunSweepNow executes the insight sweep immediately.
func (s *Scheduler) RunSweepNow() {
	s.insightSweep()
}

// insightSweep generates insights for every user with transaction history.
func (s *Scheduler) insightSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	userIDs, err := s.transactions.ListUserIDsWithTransactions(ctx)
	if err != nil {
		slog.Error("Insight sweep failed to list users", "error", err)
		return
	}

	created := 0
	failed := 0
	for _, userID := range userIDs {
		output, err := s.generateInsights.Execute(ctx, insight.GenerateInsightsInput{UserID: userID})
		if err != nil {
			slog.Error("Insight sweep failed for user", "user_id", userID, "error", err)
			failed++
			continue
		}
		created += len(output.Insights)
	}

	slog.Info("Insight sweep completed",
		"users", len(userIDs),
		"insights_created", created,
		"users_failed", failed,
	)
}
