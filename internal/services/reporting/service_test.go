package reporting

import (
	"testing"
	"time"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(month time.Month) time.Time {
	return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestBuildSummarySkipsZeroMonthsAsBaseline(t *testing.T) {
	// Jan has data, Feb is empty, Mar has data. Mar must compare against
	// Jan, not the empty Feb.
	data := map[time.Month]monthStats{
		time.January: {Count: 4, Sum: 400, Avg: 100},
		time.March:   {Count: 2, Sum: 300, Avg: 150},
	}

	summary, err := buildSummary(date(time.March), func(year int, month time.Month) (monthStats, error) {
		return data[month], nil
	})
	require.NoError(t, err)
	require.Len(t, summary.Months, 3)

	jan, feb, mar := summary.Months[0], summary.Months[1], summary.Months[2]

	assert.Equal(t, TrendUp, jan.Trend)
	assert.Equal(t, 100.0, jan.PercentageChange)

	assert.Equal(t, int64(0), feb.Count)
	assert.Equal(t, TrendStable, feb.Trend)
	assert.Equal(t, 0.0, feb.PercentageChange)

	assert.Equal(t, TrendUp, mar.Trend)
	assert.InDelta(t, 50.0, mar.PercentageChange, 0.001)

	assert.Equal(t, int64(6), summary.Overall.Count)
	assert.Equal(t, 700.0, summary.Overall.Total)
	assert.InDelta(t, 700.0/6, summary.Overall.Average, 0.001)
}

func TestBuildSummaryFirstDataMonthIsFullChange(t *testing.T) {
	// Only Feb has data; Jan contributes zeros and Feb shows a 100%
	// change because there is no earlier month to compare against.
	data := map[time.Month]monthStats{
		time.February: {Count: 1, Sum: 50, Avg: 50},
	}

	summary, err := buildSummary(date(time.February), func(year int, month time.Month) (monthStats, error) {
		return data[month], nil
	})
	require.NoError(t, err)
	require.Len(t, summary.Months, 2)

	assert.Equal(t, TrendStable, summary.Months[0].Trend)
	assert.Equal(t, TrendUp, summary.Months[1].Trend)
	assert.Equal(t, 100.0, summary.Months[1].PercentageChange)
}

func TestBuildSummaryDownTrend(t *testing.T) {
	data := map[time.Month]monthStats{
		time.January:  {Count: 2, Sum: 200, Avg: 100},
		time.February: {Count: 4, Sum: 200, Avg: 50},
	}

	summary, err := buildSummary(date(time.February), func(year int, month time.Month) (monthStats, error) {
		return data[month], nil
	})
	require.NoError(t, err)

	feb := summary.Months[1]
	assert.Equal(t, TrendDown, feb.Trend)
	assert.InDelta(t, -50.0, feb.PercentageChange, 0.001)
}

func TestBuildSummaryStableWhenAveragesMatch(t *testing.T) {
	data := map[time.Month]monthStats{
		time.January:  {Count: 2, Sum: 200, Avg: 100},
		time.February: {Count: 3, Sum: 300, Avg: 100},
	}

	summary, err := buildSummary(date(time.February), func(year int, month time.Month) (monthStats, error) {
		return data[month], nil
	})
	require.NoError(t, err)

	feb := summary.Months[1]
	assert.Equal(t, TrendStable, feb.Trend)
	assert.Equal(t, 0.0, feb.PercentageChange)
}

func TestBuildSummaryEmptyYear(t *testing.T) {
	summary, err := buildSummary(date(time.April), func(year int, month time.Month) (monthStats, error) {
		return monthStats{}, nil
	})
	require.NoError(t, err)

	require.Len(t, summary.Months, 4)
	for _, m := range summary.Months {
		assert.Equal(t, TrendStable, m.Trend)
		assert.Equal(t, int64(0), m.Count)
	}
	assert.Equal(t, OverallSummary{}, summary.Overall)
}

type statsUserRepo struct {
	total    int64
	verified int64
}

func (f *statsUserRepo) Create(*models.User) error { return nil }
func (f *statsUserRepo) CreateWithWallet(*models.User) error { return nil }
func (f *statsUserRepo) GetByID(uint) (*models.User, error) { return nil, nil }
func (f *statsUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (f *statsUserRepo) GetByPhone(string) (*models.User, error) { return nil, nil }
func (f *statsUserRepo) Update(*models.User) error { return nil }
func (f *statsUserRepo) IncrementTokenVersion(uint) error { return nil }
func (f *statsUserRepo) List(int, int) ([]models.User, error) { return nil, nil }
func (f *statsUserRepo) CountAll() (int64, error) { return f.total, nil }
func (f *statsUserRepo) CountVerified() (int64, error) { return f.verified, nil }

type statsTxRepo struct {
	count  int64
	volume float64
	byType []repositories.TransactionTypeCount
}

func (f *statsTxRepo) Create(*models.Transaction) error { return nil }
func (f *statsTxRepo) ListForUser(uint, int, int) ([]models.Transaction, error) {
	return nil, nil
}
func (f *statsTxRepo) ListAll(int, int) ([]models.Transaction, error) { return nil, nil }
func (f *statsTxRepo) CountAll() (int64, error) { return f.count, nil }
func (f *statsTxRepo) TotalVolume() (float64, error) { return f.volume, nil }
func (f *statsTxRepo) CountByType() ([]repositories.TransactionTypeCount, error) {
	return f.byType, nil
}
func (f *statsTxRepo) MonthlyStats(int, time.Month) (*repositories.MonthlyTransactionStats, error) {
	return &repositories.MonthlyTransactionStats{}, nil
}

type statsWalletRepo struct {
	totalBalance float64
}

func (f *statsWalletRepo) Create(*models.Wallet) error { return nil }
func (f *statsWalletRepo) GetByUserID(uint) (*models.Wallet, error) { return nil, nil }
func (f *statsWalletRepo) ListWithUsers(int, int) ([]repositories.WalletWithUser, error) {
	return nil, nil
}
func (f *statsWalletRepo) Credit(uint, float64) error { return nil }
func (f *statsWalletRepo) Debit(uint, float64) error { return nil }
func (f *statsWalletRepo) CreateTransaction(*models.Transaction) error { return nil }
func (f *statsWalletRepo) TotalBalance() (float64, error) { return f.totalBalance, nil }
func (f *statsWalletRepo) MonthlyStats(int, time.Month) (*repositories.MonthlyWalletStats, error) {
	return &repositories.MonthlyWalletStats{}, nil
}
func (f *statsWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

func TestStatsAggregatesAllCounters(t *testing.T) {
	svc := NewService(
		&statsUserRepo{total: 12, verified: 9},
		&statsTxRepo{count: 40, volume: 1234.5, byType: []repositories.TransactionTypeCount{
			{Type: "deposit", Count: 25},
			{Type: "transfer", Count: 15},
		}},
		&statsWalletRepo{totalBalance: 987.25},
	)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(9), stats.VerifiedUsers)
	assert.Equal(t, int64(40), stats.TotalTransactions)
	assert.Equal(t, 1234.5, stats.TotalVolume)
	assert.Equal(t, 987.25, stats.TotalBalance)
	assert.Equal(t, int64(25), stats.TransactionTypes["deposit"])
	assert.Equal(t, int64(15), stats.TransactionTypes["transfer"])
}
