package models

// AnalyzedBill is a bill projected onto its due-date reasoning for a
// reference date. DueDate is "YYYY-MM-DD"; DaysLate is set only when
// the bill is overdue.
type AnalyzedBill struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Status   Status  `json:"status"`
	DueDate  *string `json:"due_date"`
	DaysLate *int    `json:"days_late"`
}

// AnalysisSummary holds the per-request analysis headline numbers
type AnalysisSummary struct {
	TotalMonthly  float64 `json:"total_monthly"`
	OverdueCount  int     `json:"overdue_count"`
	Upcoming7Days int     `json:"upcoming_7_days"`
}

// Bucket is a grouped aggregate over one dimension value
type Bucket struct {
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// Totals holds the whole-batch scalar totals
type Totals struct {
	Amount float64 `json:"amount"`
}

// RollupSummary aggregates a batch of normalized bills by category and
// by status. Amounts are rounded to 2 decimals once, after summation.
type RollupSummary struct {
	Count             int               `json:"count"`
	Totals            Totals            `json:"totals"`
	ByCategory        map[string]Bucket `json:"by_category"`
	ByStatus          map[Status]Bucket `json:"by_status"`
	ProjectedCashFlow float64           `json:"projected_cash_flow"`
}
