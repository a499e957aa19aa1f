package models

import "strings"

// Status is the inferred payment state of a bill
type Status string

const (
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusOverdue Status = "overdue"
	StatusUnknown Status = "unknown"
)

// RawBill is an untrusted bill-shaped input record. Keys and value types
// are unreliable: spreadsheets and upstream services send strings,
// numbers, and booleans interchangeably.
type RawBill map[string]any

// Bill is the canonical normalized bill record
type Bill struct {
	ID         string   `json:"id"`
	Name       *string  `json:"name"`
	Amount     *float64 `json:"amount"`
	Frequency  string   `json:"frequency"`
	Category   string   `json:"category"`
	DueDay     *int     `json:"due_day"`
	Status     Status   `json:"status"`
	Confidence float64  `json:"confidence"`
	Note       *string  `json:"note,omitempty"`
}

// AmountOrZero returns the amount, treating a missing amount as zero
func (b *Bill) AmountOrZero() float64 {
	if b.Amount == nil {
		return 0
	}
	return *b.Amount
}

// CategoryOrDefault returns the category, defaulting to "uncategorized"
func (b *Bill) CategoryOrDefault() string {
	cat := strings.ToLower(strings.TrimSpace(b.Category))
	if cat == "" {
		return "uncategorized"
	}
	return cat
}

// StatusOrDefault returns the status, defaulting to "unknown"
func (b *Bill) StatusOrDefault() Status {
	if b.Status == "" {
		return StatusUnknown
	}
	return b.Status
}

// BillSet wraps a slice of normalized bills with aggregation methods
type BillSet struct {
	Bills []Bill
}

// NewBillSet creates a new BillSet from a slice
func NewBillSet(bills []Bill) *BillSet {
	return &BillSet{Bills: bills}
}

// Len returns the number of bills
func (bs *BillSet) Len() int {
	return len(bs.Bills)
}

// SumAmount returns the sum of all known amounts; missing amounts
// contribute zero
func (bs *BillSet) SumAmount() float64 {
	var sum float64
	for i := range bs.Bills {
		sum += bs.Bills[i].AmountOrZero()
	}
	return sum
}

// FilterByStatus returns bills with the given status
func (bs *BillSet) FilterByStatus(st Status) *BillSet {
	result := &BillSet{}
	for _, b := range bs.Bills {
		if b.StatusOrDefault() == st {
			result.Bills = append(result.Bills, b)
		}
	}
	return result
}

// GroupByCategory groups bills by case-folded category
func (bs *BillSet) GroupByCategory() map[string]*BillSet {
	result := make(map[string]*BillSet)
	for _, b := range bs.Bills {
		cat := b.CategoryOrDefault()
		if result[cat] == nil {
			result[cat] = &BillSet{}
		}
		result[cat].Bills = append(result[cat].Bills, b)
	}
	return result
}

// GroupByStatus groups bills by status
func (bs *BillSet) GroupByStatus() map[Status]*BillSet {
	result := make(map[Status]*BillSet)
	for _, b := range bs.Bills {
		st := b.StatusOrDefault()
		if result[st] == nil {
			result[st] = &BillSet{}
		}
		result[st].Bills = append(result[st].Bills, b)
	}
	return result
}
