// Package reporting builds the admin dashboards: system-wide counters
// and year-to-date monthly summaries with month-over-month trends.
package reporting

import (
	"time"

	"paylink/internal/repositories"
)

// monthStats is the shape both repositories produce for one month.
type monthStats struct {
	Count int64
	Sum   float64
	Avg   float64
}

// Service exposes the admin reporting queries.
type Service interface {
	TransactionSummary(now time.Time) (*Summary, error)
	WalletSummary(now time.Time) (*Summary, error)
	Stats() (*AdminStats, error)
}

type service struct {
	users        repositories.UserRepository
	transactions repositories.TransactionRepository
	wallets      repositories.WalletRepository
}

// NewService creates a reporting service.
func NewService(users repositories.UserRepository, transactions repositories.TransactionRepository, wallets repositories.WalletRepository) Service {
	if users == nil || transactions == nil || wallets == nil {
		panic("all repositories are required")
	}
	return &service{users: users, transactions: transactions, wallets: wallets}
}

func (s *service) TransactionSummary(now time.Time) (*Summary, error) {
	return buildSummary(now, func(year int, month time.Month) (monthStats, error) {
		stats, err := s.transactions.MonthlyStats(year, month)
		if err != nil {
			return monthStats{}, err
		}
		return monthStats{Count: stats.Count, Sum: stats.Sum, Avg: stats.Avg}, nil
	})
}

func (s *service) WalletSummary(now time.Time) (*Summary, error) {
	return buildSummary(now, func(year int, month time.Month) (monthStats, error) {
		stats, err := s.wallets.MonthlyStats(year, month)
		if err != nil {
			return monthStats{}, err
		}
		return monthStats{Count: stats.Count, Sum: stats.Sum, Avg: stats.Avg}, nil
	})
}

// buildSummary walks January through the current month. A month with no
// data contributes a zero row and leaves the comparison baseline alone,
// so each trend compares against the last month that actually had data.
func buildSummary(now time.Time, fetch func(year int, month time.Month) (monthStats, error)) (*Summary, error) {
	year := now.Year()
	currentMonth := now.Month()

	summary := &Summary{Months: make([]MonthSummary, 0, int(currentMonth))}
	var (
		baseline    float64
		hasBaseline bool
	)

	for m := time.January; m <= currentMonth; m++ {
		stats, err := fetch(year, m)
		if err != nil {
			return nil, err
		}

		row := MonthSummary{
			Year:    year,
			Month:   int(m),
			Count:   stats.Count,
			Total:   stats.Sum,
			Average: stats.Avg,
			Trend:   TrendStable,
		}

		if stats.Count > 0 {
			switch {
			case !hasBaseline || baseline == 0:
				row.Trend = TrendUp
				row.PercentageChange = 100
			case stats.Avg > baseline:
				row.Trend = TrendUp
				row.PercentageChange = (stats.Avg - baseline) / baseline * 100
			case stats.Avg < baseline:
				row.Trend = TrendDown
				row.PercentageChange = (stats.Avg - baseline) / baseline * 100
			}
			baseline = stats.Avg
			hasBaseline = true
		}

		summary.Overall.Count += stats.Count
		summary.Overall.Total += stats.Sum
		summary.Months = append(summary.Months, row)
	}

	if summary.Overall.Count > 0 {
		summary.Overall.Average = summary.Overall.Total / float64(summary.Overall.Count)
	}
	return summary, nil
}

func (s *service) Stats() (*AdminStats, error) {
	totalUsers, err := s.users.CountAll()
	if err != nil {
		return nil, err
	}
	verified, err := s.users.CountVerified()
	if err != nil {
		return nil, err
	}
	totalTx, err := s.transactions.CountAll()
	if err != nil {
		return nil, err
	}
	volume, err := s.transactions.TotalVolume()
	if err != nil {
		return nil, err
	}
	byType, err := s.transactions.CountByType()
	if err != nil {
		return nil, err
	}
	balance, err := s.wallets.TotalBalance()
	if err != nil {
		return nil, err
	}

	types := make(map[string]int64, len(byType))
	for _, row := range byType {
		types[row.Type] = row.Count
	}

	return &AdminStats{
		TotalUsers:        totalUsers,
		VerifiedUsers:     verified,
		TotalTransactions: totalTx,
		TotalVolume:       volume,
		TotalBalance:      balance,
		TransactionTypes:  types,
	}, nil
}
