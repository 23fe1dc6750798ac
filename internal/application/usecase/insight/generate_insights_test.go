package insight

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/backend/internal/application/adapter"
	"github.com/spendlens/backend/internal/domain/entity"
	domainerror "github.com/spendlens/backend/internal/domain/error"
	"github.com/spendlens/backend/internal/domain/valueobject"
)

// fakeInsightRepository is an in-memory InsightRepository.
type fakeInsightRepository struct {
	insights  []*entity.Insight
	createErr error
	existsErr error
}

func (f *fakeInsightRepository) Create(ctx context.Context, insight *entity.Insight) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *insight
	f.insights = append(f.insights, &stored)
	return nil
}

func (f *fakeInsightRepository) ExistsRecent(
	ctx context.Context, userID uuid.UUID, insightType entity.InsightType, title string, since time.Time,
) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, insight := range f.insights {
		if insight.UserID == userID && insight.Type == insightType && insight.Title == title &&
			!insight.GeneratedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInsightRepository) FindByFilter(ctx context.Context, filter adapter.InsightFilter) ([]*entity.Insight, error) {
	var matched []*entity.Insight
	for _, insight := range f.insights {
		if insight.UserID != filter.UserID || insight.IsDismissed {
			continue
		}
		if filter.Type != nil && insight.Type != *filter.Type {
			continue
		}
		if filter.Severity != nil && insight.Severity != *filter.Severity {
			continue
		}
		if filter.UnreadOnly && insight.IsRead {
			continue
		}
		matched = append(matched, insight)
		if filter.Limit > 0 && len(matched) == filter.Limit {
			break
		}
	}
	return matched, nil
}

func (f *fakeInsightRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Insight, error) {
	for _, insight := range f.insights {
		if insight.ID == id && insight.UserID == userID {
			return insight, nil
		}
	}
	return nil, domainerror.ErrInsightNotFound
}

func (f *fakeInsightRepository) Update(ctx context.Context, updated *entity.Insight) error {
	for i, insight := range f.insights {
		if insight.ID == updated.ID {
			stored := *updated
			f.insights[i] = &stored
			return nil
		}
	}
	return domainerror.ErrInsightNotFound
}

// fakeCache is an in-memory cache recording deletions.
type fakeCache struct {
	values map[string][]byte
	dels   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := f.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = raw
	return nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	delete(f.values, key)
	f.dels = append(f.dels, key)
	return nil
}

// failingRule always errors; siblings must still run.
type failingRule struct{}

func (failingRule) Name() string { return "failing" }

func (failingRule) Evaluate(ctx context.Context, rc RuleContext) ([]*entity.Insight, error) {
	return nil, errors.New("rule exploded")
}

// savingsStub returns income and expense sums that clear the savings target.
func savingsStub() *stubTransactions {
	return &stubTransactions{
		sumByType: func(transactionType entity.TransactionType, categoryID *uuid.UUID, dateRange adapter.DateRange) decimal.Decimal {
			if transactionType == entity.TransactionTypeIncome {
				return decimal.NewFromInt(100000)
			}
			return decimal.NewFromInt(50000)
		},
	}
}

func newGenerateUseCase(rules []Rule, repo *fakeInsightRepository, transactions *stubTransactions, cache *fakeCache, now time.Time) *GenerateInsightsUseCase {
	uc := NewGenerateInsightsUseCase(
		rules,
		repo,
		transactions,
		&stubBudgets{},
		&stubCategories{},
		cache,
		valueobject.DefaultTuning(),
	)
	uc.now = func() time.Time { return now }
	return uc
}

func TestGenerateInsightsUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, time.June, 21, 6, 0, 0, 0, time.UTC)

	t.Run("persists surviving drafts and invalidates the list cache", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		cache := newFakeCache()
		uc := newGenerateUseCase([]Rule{savingsMilestoneRule{}}, repo, savingsStub(), cache, now)

		output, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Insights) != 1 {
			t.Fatalf("expected 1 insight created, got %d", len(output.Insights))
		}
		if len(repo.insights) != 1 {
			t.Fatalf("expected 1 insight persisted, got %d", len(repo.insights))
		}
		if !output.Insights[0].GeneratedAt.Equal(now) {
			t.Errorf("expected GeneratedAt pinned to execution time, got %s", output.Insights[0].GeneratedAt)
		}
		if len(cache.dels) != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", len(cache.dels))
		}
	})

	t.Run("repeat run within the dedup window creates nothing", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		uc := newGenerateUseCase([]Rule{savingsMilestoneRule{}}, repo, savingsStub(), newFakeCache(), now)

		first, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Insights) != 1 {
			t.Fatalf("expected 1 insight on the first run, got %d", len(first.Insights))
		}

		uc.now = func() time.Time { return now.Add(time.Hour) }
		second, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Insights) != 0 {
			t.Errorf("expected dedup to suppress the repeat, got %d insights", len(second.Insights))
		}
		if len(repo.insights) != 1 {
			t.Errorf("expected only the first insight persisted, got %d", len(repo.insights))
		}
	})

	t.Run("run after the dedup window creates again", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		uc := newGenerateUseCase([]Rule{savingsMilestoneRule{}}, repo, savingsStub(), newFakeCache(), now)

		if _, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc.now = func() time.Time { return now.Add(25 * time.Hour) }
		second, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Insights) != 1 {
			t.Errorf("expected a fresh insight after the window, got %d", len(second.Insights))
		}
	})

	t.Run("a failing rule does not abort its siblings", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		uc := newGenerateUseCase([]Rule{failingRule{}, savingsMilestoneRule{}}, repo, savingsStub(), newFakeCache(), now)

		output, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("expected rule failure to be absorbed, got %v", err)
		}
		if len(output.Insights) != 1 {
			t.Errorf("expected the surviving rule's insight, got %d", len(output.Insights))
		}
	})

	t.Run("dedup check failure inserts anyway", func(t *testing.T) {
		repo := &fakeInsightRepository{existsErr: errors.New("store flaky")}
		uc := newGenerateUseCase([]Rule{savingsMilestoneRule{}}, repo, savingsStub(), newFakeCache(), now)

		output, err := uc.Execute(context.Background(), GenerateInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Insights) != 1 {
			t.Errorf("expected the insert to proceed past a failed dedup check, got %d", len(output.Insights))
		}
	})
}

func TestGetInsightsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	seed := func(repo *fakeInsightRepository) (*entity.Insight, *entity.Insight) {
		visible := entity.NewInsight(userID, entity.InsightTypeSpendingSpike, "Spending spike this week", "d", entity.SeverityWarning)
		dismissed := entity.NewInsight(userID, entity.InsightTypeCategoryCreep, "Groceries spending increased", "d", entity.SeverityInfo)
		dismissed.Dismiss(time.Now().UTC())
		repo.insights = append(repo.insights, visible, dismissed)
		return visible, dismissed
	}

	t.Run("dismissed insights are excluded", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		visible, _ := seed(repo)
		uc := NewGetInsightsUseCase(repo, newFakeCache())

		output, err := uc.Execute(context.Background(), GetInsightsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Insights) != 1 {
			t.Fatalf("expected 1 visible insight, got %d", len(output.Insights))
		}
		if output.Insights[0].ID != visible.ID {
			t.Error("expected the non-dismissed insight")
		}
	})

	t.Run("type filter narrows the listing", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		seed(repo)
		uc := NewGetInsightsUseCase(repo, newFakeCache())

		creep := entity.InsightTypeCategoryCreep
		output, err := uc.Execute(context.Background(), GetInsightsInput{UserID: userID, Type: &creep})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Insights) != 0 {
			t.Errorf("expected no creep insights (the only one is dismissed), got %d", len(output.Insights))
		}
	})

	t.Run("unknown type filter is rejected", func(t *testing.T) {
		uc := NewGetInsightsUseCase(&fakeInsightRepository{}, newFakeCache())

		bogus := entity.InsightType("cosmic_ray")
		_, err := uc.Execute(context.Background(), GetInsightsInput{UserID: userID, Type: &bogus})
		var insErr *domainerror.InsightError
		if !errors.As(err, &insErr) || insErr.Code != domainerror.ErrCodeInvalidInsightType {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeInvalidInsightType, err)
		}
	})

	t.Run("unknown severity filter is rejected", func(t *testing.T) {
		uc := NewGetInsightsUseCase(&fakeInsightRepository{}, newFakeCache())

		bogus := entity.InsightSeverity("apocalyptic")
		_, err := uc.Execute(context.Background(), GetInsightsInput{UserID: userID, Severity: &bogus})
		var insErr *domainerror.InsightError
		if !errors.As(err, &insErr) || insErr.Code != domainerror.ErrCodeInvalidInsightSeverity {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeInvalidInsightSeverity, err)
		}
	})

	t.Run("unfiltered listing is cached", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		seed(repo)
		cache := newFakeCache()
		uc := NewGetInsightsUseCase(repo, cache)

		if _, err := uc.Execute(context.Background(), GetInsightsInput{UserID: userID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := cache.values[insightListCacheKey(userID)]; !ok {
			t.Error("expected the unfiltered listing to be cached")
		}
	})
}

func TestMarkReadAndDismiss(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, time.June, 21, 9, 0, 0, 0, time.UTC)

	t.Run("mark read is one-way and idempotent", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		stored := entity.NewInsight(userID, entity.InsightTypeSpendingSpike, "Spending spike this week", "d", entity.SeverityWarning)
		repo.insights = append(repo.insights, stored)

		uc := NewMarkReadUseCase(repo, newFakeCache())
		uc.now = func() time.Time { return now }

		output, err := uc.Execute(context.Background(), MarkReadInput{InsightID: stored.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Insight.IsRead || output.Insight.ReadAt == nil {
			t.Error("expected the insight marked read with a timestamp")
		}
		firstReadAt := *output.Insight.ReadAt

		uc.now = func() time.Time { return now.Add(time.Hour) }
		again, err := uc.Execute(context.Background(), MarkReadInput{InsightID: stored.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error on repeat: %v", err)
		}
		if !again.Insight.ReadAt.Equal(firstReadAt) {
			t.Error("expected the original read timestamp preserved")
		}
	})

	t.Run("dismiss hides the insight from listings", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		stored := entity.NewInsight(userID, entity.InsightTypeCategoryCreep, "Groceries spending increased", "d", entity.SeverityInfo)
		repo.insights = append(repo.insights, stored)

		uc := NewDismissUseCase(repo, newFakeCache())
		uc.now = func() time.Time { return now }

		output, err := uc.Execute(context.Background(), DismissInput{InsightID: stored.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Insight.IsDismissed || output.Insight.DismissedAt == nil {
			t.Error("expected the insight dismissed with a timestamp")
		}

		listed, err := repo.FindByFilter(context.Background(), adapter.InsightFilter{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(listed) != 0 {
			t.Errorf("expected dismissed insight hidden, got %d", len(listed))
		}
	})

	t.Run("another user's insight is not found", func(t *testing.T) {
		repo := &fakeInsightRepository{}
		stored := entity.NewInsight(uuid.New(), entity.InsightTypeSpendingSpike, "Spending spike this week", "d", entity.SeverityWarning)
		repo.insights = append(repo.insights, stored)

		uc := NewMarkReadUseCase(repo, newFakeCache())
		_, err := uc.Execute(context.Background(), MarkReadInput{InsightID: stored.ID, UserID: userID})
		var insErr *domainerror.InsightError
		if !errors.As(err, &insErr) || insErr.Code != domainerror.ErrCodeInsightNotFound {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeInsightNotFound, err)
		}
	})
}
