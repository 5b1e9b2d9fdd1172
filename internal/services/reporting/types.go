package reporting

// Trend values for month-over-month comparison.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// MonthSummary is one month's aggregate row.
type MonthSummary struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	Count            int64   `json:"count"`
	Total            float64 `json:"total"`
	Average          float64 `json:"average"`
	Trend            string  `json:"trend"`
	PercentageChange float64 `json:"percentage_change"`
}

// OverallSummary rolls all months up into one object.
type OverallSummary struct {
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// Summary is the full year-to-date report.
type Summary struct {
	Months  []MonthSummary `json:"months"`
	Overall OverallSummary `json:"overall"`
}

// AdminStats is the system-wide counters payload.
type AdminStats struct {
	TotalUsers        int64            `json:"total_users"`
	VerifiedUsers     int64            `json:"verified_users"`
	TotalTransactions int64            `json:"total_transactions"`
	TotalVolume       float64          `json:"total_volume"`
	TotalBalance      float64          `json:"total_balance"`
	TransactionTypes  map[string]int64 `json:"transaction_types"`
}
