package aggregator

import (
	"testing"
	"time"

	"ledgerapi/internal/models"
)

var ref = time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)

func bill(opts func(*models.Bill)) models.Bill {
	b := models.Bill{
		Frequency:  "monthly",
		Category:   "uncategorized",
		Status:     models.StatusUnknown,
		Confidence: 0.9,
	}
	opts(&b)
	return b
}

func amt(v float64) *float64 { return &v }
func day(v int) *int         { return &v }

func TestRollupsEmpty(t *testing.T) {
	summary := Rollups(nil)

	if summary.Count != 0 {
		t.Errorf("Count = %d, want 0", summary.Count)
	}
	if summary.Totals.Amount != 0 {
		t.Errorf("Totals.Amount = %v, want 0", summary.Totals.Amount)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("ByCategory = %v, want empty", summary.ByCategory)
	}
	if len(summary.ByStatus) != 0 {
		t.Errorf("ByStatus = %v, want empty", summary.ByStatus)
	}
	if summary.ProjectedCashFlow != 0 {
		t.Errorf("ProjectedCashFlow = %v, want 0", summary.ProjectedCashFlow)
	}
}

func TestRollupsCaseFoldedCategories(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.Amount = amt(1000); b.Category = "Rent" }),
		bill(func(b *models.Bill) { b.Amount = amt(50); b.Category = "rent" }),
	}

	summary := Rollups(bills)

	bucket, ok := summary.ByCategory["rent"]
	if !ok {
		t.Fatalf("ByCategory missing %q: %v", "rent", summary.ByCategory)
	}
	if bucket.Amount != 1050.0 {
		t.Errorf("rent amount = %v, want 1050.0", bucket.Amount)
	}
	if bucket.Count != 2 {
		t.Errorf("rent count = %d, want 2", bucket.Count)
	}
	if len(summary.ByCategory) != 1 {
		t.Errorf("got %d categories, want 1", len(summary.ByCategory))
	}
}

func TestRollupsRoundsOnceAtEnd(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.Amount = amt(10.005) }),
		bill(func(b *models.Bill) { b.Amount = amt(10.005) }),
	}

	summary := Rollups(bills)

	// Per-term rounding would give 10.01 + 10.01 = 20.02
	if summary.Totals.Amount != 20.01 {
		t.Errorf("Totals.Amount = %v, want 20.01", summary.Totals.Amount)
	}
	if summary.ByCategory["uncategorized"].Amount != 20.01 {
		t.Errorf("bucket amount = %v, want 20.01", summary.ByCategory["uncategorized"].Amount)
	}
}

func TestRollupsDefaultsAndCashFlow(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.Amount = amt(100); b.Category = ""; b.Status = "" }),
		bill(func(b *models.Bill) { b.Amount = nil; b.Status = models.StatusPaid }),
		bill(func(b *models.Bill) { b.Amount = amt(49.99); b.Status = models.StatusPaid }),
	}

	summary := Rollups(bills)

	if summary.Count != 3 {
		t.Errorf("Count = %d, want 3", summary.Count)
	}
	if summary.Totals.Amount != 149.99 {
		t.Errorf("Totals.Amount = %v, want 149.99", summary.Totals.Amount)
	}
	if summary.ProjectedCashFlow != -149.99 {
		t.Errorf("ProjectedCashFlow = %v, want -149.99", summary.ProjectedCashFlow)
	}

	uncat := summary.ByCategory["uncategorized"]
	if uncat.Count != 3 {
		t.Errorf("uncategorized count = %d, want 3", uncat.Count)
	}

	if summary.ByStatus[models.StatusUnknown].Count != 1 {
		t.Errorf("unknown count = %d, want 1", summary.ByStatus[models.StatusUnknown].Count)
	}
	paid := summary.ByStatus[models.StatusPaid]
	if paid.Count != 2 || paid.Amount != 49.99 {
		t.Errorf("paid bucket = %+v, want count 2 amount 49.99", paid)
	}
}

func TestCategoryTotals(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.Amount = amt(1200); b.Category = "housing" }),
		bill(func(b *models.Bill) { b.Amount = amt(15.49); b.Category = "streaming" }),
		bill(func(b *models.Bill) { b.Amount = amt(4.51); b.Category = "streaming" }),
	}

	totals := CategoryTotals(bills)

	if totals["housing"] != 1200 {
		t.Errorf("housing = %v, want 1200", totals["housing"])
	}
	if totals["streaming"] != 20.0 {
		t.Errorf("streaming = %v, want 20.0", totals["streaming"])
	}
}

func TestProjectedCashFlow(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.Amount = amt(100.555) }),
	}
	if got := ProjectedCashFlow(bills); got != -100.56 {
		t.Errorf("ProjectedCashFlow = %v, want -100.56", got)
	}
	if got := ProjectedCashFlow(nil); got != 0 {
		t.Errorf("ProjectedCashFlow(nil) = %v, want 0", got)
	}
}

func TestAnalyzeSummary(t *testing.T) {
	bills := []models.Bill{
		// Overdue: due day 3, reference is the 5th
		bill(func(b *models.Bill) { b.ID = "a"; b.Amount = amt(100); b.DueDay = day(3); b.Status = models.StatusOverdue }),
		// Upcoming: due on the 10th, 5 days out
		bill(func(b *models.Bill) { b.ID = "b"; b.Amount = amt(50); b.DueDay = day(10); b.Status = models.StatusUnpaid }),
		// Boundary: due on the 12th, exactly 7 days out, still counts
		bill(func(b *models.Bill) { b.ID = "c"; b.Amount = amt(25); b.DueDay = day(12); b.Status = models.StatusUnpaid }),
		// Outside the window: due on the 13th, 8 days out
		bill(func(b *models.Bill) { b.ID = "d"; b.Amount = amt(10); b.DueDay = day(13); b.Status = models.StatusUnpaid }),
		// Paid bills never count as upcoming
		bill(func(b *models.Bill) { b.ID = "e"; b.Amount = amt(5); b.DueDay = day(10); b.Status = models.StatusPaid }),
	}

	summary, analyzed := Analyze(bills, ref)

	if summary.TotalMonthly != 190.0 {
		t.Errorf("TotalMonthly = %v, want 190.0", summary.TotalMonthly)
	}
	if summary.OverdueCount != 1 {
		t.Errorf("OverdueCount = %d, want 1", summary.OverdueCount)
	}
	if summary.Upcoming7Days != 2 {
		t.Errorf("Upcoming7Days = %d, want 2", summary.Upcoming7Days)
	}
	if len(analyzed) != 5 {
		t.Fatalf("got %d analyzed bills, want 5", len(analyzed))
	}
}

func TestAnalyzeDaysLate(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.ID = "a"; b.DueDay = day(1); b.Status = models.StatusOverdue }),
		bill(func(b *models.Bill) { b.ID = "b"; b.DueDay = day(10); b.Status = models.StatusUnpaid }),
		bill(func(b *models.Bill) { b.ID = "c"; b.Status = models.StatusUnknown }),
	}

	_, analyzed := Analyze(bills, ref)

	a := analyzed[0]
	if a.DueDate == nil || *a.DueDate != "2025-04-01" {
		t.Errorf("a.DueDate = %v, want 2025-04-01", a.DueDate)
	}
	if a.DaysLate == nil || *a.DaysLate != 4 {
		t.Errorf("a.DaysLate = %v, want 4", a.DaysLate)
	}

	b := analyzed[1]
	if b.DaysLate != nil {
		t.Errorf("b.DaysLate = %d, want nil for non-overdue", *b.DaysLate)
	}
	if b.DueDate == nil || *b.DueDate != "2025-04-10" {
		t.Errorf("b.DueDate = %v, want 2025-04-10", b.DueDate)
	}

	c := analyzed[2]
	if c.DueDate != nil {
		t.Errorf("c.DueDate = %q, want nil without a due day", *c.DueDate)
	}
}

func TestAnalyzeDueDayClampsToMonthEnd(t *testing.T) {
	bills := []models.Bill{
		bill(func(b *models.Bill) { b.ID = "rent"; b.Amount = amt(1200); b.DueDay = day(31); b.Status = models.StatusUnpaid }),
	}

	summary, analyzed := Analyze(bills, ref)

	// April has 30 days; day 31 maps to the last calendar day
	if analyzed[0].DueDate == nil || *analyzed[0].DueDate != "2025-04-30" {
		t.Errorf("DueDate = %v, want 2025-04-30", analyzed[0].DueDate)
	}
	if analyzed[0].Status != models.StatusUnpaid {
		t.Errorf("Status = %q, want unpaid", analyzed[0].Status)
	}
	// 25 days out: not within the 7-day window from the 5th
	if summary.Upcoming7Days != 0 {
		t.Errorf("Upcoming7Days = %d, want 0", summary.Upcoming7Days)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	summary, analyzed := Analyze(nil, ref)

	if summary.TotalMonthly != 0 || summary.OverdueCount != 0 || summary.Upcoming7Days != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
	if len(analyzed) != 0 {
		t.Errorf("got %d analyzed bills, want 0", len(analyzed))
	}
}
