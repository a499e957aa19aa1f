// Package aggregator computes rollups and reference-date analysis over
// batches of normalized bills.
package aggregator

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerapi/internal/models"
	"ledgerapi/internal/services/normalizer"
)

// upcomingWindow is the inclusive horizon for "due soon" counting
const upcomingWindow = 7 * 24 * time.Hour

// Rollups aggregates a batch of normalized bills. Amounts accumulate
// at full precision and are rounded to 2 decimals exactly once, after
// summation. Missing categories and statuses fall into the
// "uncategorized" and "unknown" buckets.
func Rollups(bills []models.Bill) models.RollupSummary {
	set := models.NewBillSet(bills)
	total := set.SumAmount()

	byCategory := make(map[string]models.Bucket)
	for cat, sub := range set.GroupByCategory() {
		byCategory[cat] = models.Bucket{
			Amount: round2(sub.SumAmount()),
			Count:  sub.Len(),
		}
	}

	byStatus := make(map[models.Status]models.Bucket)
	for st, sub := range set.GroupByStatus() {
		byStatus[st] = models.Bucket{
			Amount: round2(sub.SumAmount()),
			Count:  sub.Len(),
		}
	}

	return models.RollupSummary{
		Count:             set.Len(),
		Totals:            models.Totals{Amount: round2(total)},
		ByCategory:        byCategory,
		ByStatus:          byStatus,
		ProjectedCashFlow: round2(-total),
	}
}

// CategoryTotals returns the flat category -> amount mapping used by
// the ledger summary, rounded once per category.
func CategoryTotals(bills []models.Bill) map[string]float64 {
	totals := make(map[string]float64)
	for cat, sub := range models.NewBillSet(bills).GroupByCategory() {
		totals[cat] = round2(sub.SumAmount())
	}
	return totals
}

// ProjectedCashFlow is the negative of the summed amounts: every bill
// models a future outflow.
func ProjectedCashFlow(bills []models.Bill) float64 {
	return round2(-models.NewBillSet(bills).SumAmount())
}

// Analyze projects each bill onto its due-date reasoning for the given
// reference date and computes the headline summary. A bill counts
// toward upcoming_7_days when it is unpaid and its due date falls
// within the next 7 days, both endpoints inclusive.
func Analyze(bills []models.Bill, ref time.Time) (models.AnalysisSummary, []models.AnalyzedBill) {
	ref = truncateToDay(ref)
	windowEnd := ref.Add(upcomingWindow)

	set := models.NewBillSet(bills)
	analyzed := make([]models.AnalyzedBill, 0, len(bills))
	var upcoming int

	for _, b := range bills {
		ab := models.AnalyzedBill{
			ID:     b.ID,
			Name:   b.Name,
			Status: b.StatusOrDefault(),
		}

		if b.DueDay != nil {
			due := normalizer.DueDateFor(*b.DueDay, ref)
			ds := due.Format("2006-01-02")
			ab.DueDate = &ds

			if ab.Status == models.StatusOverdue {
				late := int(ref.Sub(due).Hours() / 24)
				ab.DaysLate = &late
			}

			if ab.Status == models.StatusUnpaid && !due.Before(ref) && !due.After(windowEnd) {
				upcoming++
			}
		}

		analyzed = append(analyzed, ab)
	}

	summary := models.AnalysisSummary{
		TotalMonthly:  round2(set.SumAmount()),
		OverdueCount:  set.FilterByStatus(models.StatusOverdue).Len(),
		Upcoming7Days: upcoming,
	}

	return summary, analyzed
}

// round2 rounds half away from zero, applied once per reported figure
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// truncateToDay reduces a reference time to its UTC calendar day, the
// same day the normalizer reasons about
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
