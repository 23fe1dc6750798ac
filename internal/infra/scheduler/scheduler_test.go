package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/application/usecase/insight"
	"github.com/spendlens/backend/internal/domain/entity"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// sweepReader serves a fixed user list; the aggregate reads return empty data
// so every rule in the battery stays silent.
type sweepReader struct {
	userIDs []uuid.UUID
	listErr error
}

func (r *sweepReader) ListDailyExpenseTotals(
	ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, dateRange adapter.DateRange,
) ([]entity.DailyPoint, error) {
	return nil, nil
}

func (r *sweepReader) SumByType(
	ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType,
	categoryID *uuid.UUID, dateRange adapter.DateRange,
) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *sweepReader) SumExpensesByCategory(
	ctx context.Context, userID uuid.UUID, dateRange adapter.DateRange,
) ([]adapter.CategoryTotal, error) {
	return nil, nil
}

func (r *sweepReader) ListRecentExpenses(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *sweepReader) AverageExpenseForCategory(
	ctx context.Context, userID uuid.UUID, categoryID uuid.UUID, excludeID uuid.UUID,
) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *sweepReader) FindRecurringCandidates(
	ctx context.Context, userID uuid.UUID, minOccurrences int, limit int,
) ([]entity.RecurringCandidate, error) {
	return nil, nil
}

func (r *sweepReader) ListUserIDsWithTransactions(ctx context.Context) ([]uuid.UUID, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.userIDs, nil
}

type nopInsightRepo struct{}

func (nopInsightRepo) Create(ctx context.Context, insight *entity.Insight) error { return nil }

func (nopInsightRepo) ExistsRecent(
	ctx context.Context, userID uuid.UUID, insightType entity.InsightType, title string, since time.Time,
) (bool, error) {
	return false, nil
}

func (nopInsightRepo) FindByFilter(ctx context.Context, filter adapter.InsightFilter) ([]*entity.Insight, error) {
	return nil, nil
}

func (nopInsightRepo) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Insight, error) {
	return nil, nil
}

func (nopInsightRepo) Update(ctx context.Context, insight *entity.Insight) error { return nil }

type nopBudgetRepo struct{}

func (nopBudgetRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	return nil, nil
}

type nopCategoryRepo struct{}

func (nopCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

// countingCache records invalidations; the sweep invalidates once per user.
type countingCache struct {
	mu   sync.Mutex
	dels []string
}

func (c *countingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

func (c *countingCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (c *countingCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	return nil
}

func newSweepScheduler(reader *sweepReader, cache *countingCache) *Scheduler {
	generate := insight.NewGenerateInsightsUseCase(
		insight.DefaultRules(),
		nopInsightRepo{},
		reader,
		nopBudgetRepo{},
		nopCategoryRepo{},
		cache,
		valueobject.DefaultTuning(),
	)
	return NewScheduler(reader, generate)
}

func TestScheduler_RunSweepNow(t *testing.T) {
	t.Run("sweeps every user with history", func(t *testing.T) {
		reader := &sweepReader{userIDs: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}}
		cache := &countingCache{}

		newSweepScheduler(reader, cache).RunSweepNow()

		if len(cache.dels) != 3 {
			t.Errorf("expected one invalidation per user, got %d", len(cache.dels))
		}
	})

	t.Run("unreachable user listing aborts quietly", func(t *testing.T) {
		reader := &sweepReader{listErr: errors.New("store down")}
		cache := &countingCache{}

		newSweepScheduler(reader, cache).RunSweepNow()

		if len(cache.dels) != 0 {
			t.Errorf("expected no sweeps without a user list, got %d", len(cache.dels))
		}
	})

	t.Run("rejects a malformed cron spec", func(t *testing.T) {
		reader := &sweepReader{}
		sweep := newSweepScheduler(reader, &countingCache{})

		if err := sweep.Register("not a cron spec"); err == nil {
			t.Error("expected an error for a malformed cron spec")
		}
		if err := sweep.Register("0 0 6 * * *"); err != nil {
			t.Errorf("expected the daily spec to register, got %v", err)
		}
	})
}
