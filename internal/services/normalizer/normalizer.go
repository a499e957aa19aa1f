// Package normalizer maps loosely-structured bill records to canonical
// form. It never fails a batch: malformed fields degrade to null or
// default values and emit per-item warnings.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledgerapi/internal/models"
)

// Confidence assigned to every normalized bill. The heuristics below
// are deterministic, so this is a fixed constant rather than a
// computed score.
const Confidence = 0.9

// Status tokens treated as "paid" (lowercase)
var PaidTokens = map[string]bool{
	"paid": true, "p": true, "yes": true, "true": true, "1": true,
	"done": true, "complete": true, "completed": true, "x": true,
}

// Status tokens treated as "unpaid" (lowercase)
var UnpaidTokens = map[string]bool{
	"unpaid": true, "no": true, "false": true, "0": true,
	"none": true, "": true,
}

// Normalize converts one raw bill to canonical form. ordinal is the
// 1-based position of the bill in its batch and seeds the fallback id.
// ref is the date used for due-day status reasoning.
func Normalize(raw models.RawBill, ordinal int, ref time.Time) (models.Bill, []string) {
	var warnings []string

	id := deriveID(raw, ordinal)

	warn := func(format string, args ...any) {
		warnings = append(warnings, id+": "+fmt.Sprintf(format, args...))
	}

	amount, ok := CoerceAmount(raw["amount"])
	if !ok {
		warn("unparseable amount %v", raw["amount"])
	}

	dueDay, dueWarnings := deriveDueDay(raw)
	for _, w := range dueWarnings {
		warnings = append(warnings, id+": "+w)
	}

	bill := models.Bill{
		ID:         id,
		Name:       deriveName(raw["name"]),
		Amount:     amount,
		Frequency:  lowerOrDefault(raw["frequency"], "monthly"),
		Category:   lowerOrDefault(raw["category"], "uncategorized"),
		DueDay:     dueDay,
		Status:     DeriveStatus(raw, dueDay, ref),
		Confidence: Confidence,
		Note:       asString(raw["note"]),
	}

	return bill, warnings
}

// NormalizeAll normalizes a batch, collecting all warnings. A
// malformed item degrades only itself; the batch always completes.
func NormalizeAll(raws []models.RawBill, ref time.Time) ([]models.Bill, []string) {
	normalized := make([]models.Bill, 0, len(raws))
	warnings := []string{}

	for i, raw := range raws {
		bill, w := Normalize(raw, i+1, ref)
		normalized = append(normalized, bill)
		warnings = append(warnings, w...)
	}

	return normalized, warnings
}

// DeriveStatus infers the payment status of a raw bill.
//
// An explicit boolean paid flag always wins over any status text.
// Otherwise the status string is matched against the token sets, with
// a substring fallback ("paid" but not "unpaid" means paid). Whenever
// the result is not paid and a due day is known, the due day decides:
// overdue iff ref is strictly after the computed due date, otherwise
// unpaid. The due day itself is unpaid, not overdue.
func DeriveStatus(raw models.RawBill, dueDay *int, ref time.Time) models.Status {
	ref = truncateToDay(ref)
	base := models.StatusUnknown

	if paid, ok := paidFlag(raw); ok {
		if paid {
			return models.StatusPaid
		}
		base = models.StatusUnpaid
	} else if s := asString(raw["status"]); s != nil {
		tok := strings.ToLower(*s)
		switch {
		case PaidTokens[tok]:
			return models.StatusPaid
		case UnpaidTokens[tok]:
			base = models.StatusUnpaid
		case tok == string(models.StatusOverdue):
			base = models.StatusOverdue
		case tok == string(models.StatusUnknown):
			base = models.StatusUnknown
		case strings.Contains(tok, "paid") && !strings.Contains(tok, "unpaid"):
			return models.StatusPaid
		default:
			// Unrecognized status text still tells us the bill is open
			base = models.StatusUnpaid
		}
	}

	if dueDay != nil {
		if ref.After(DueDateFor(*dueDay, ref)) {
			return models.StatusOverdue
		}
		return models.StatusUnpaid
	}

	return base
}

// DueDateFor combines a due day with the reference date's year and
// month. Days past the calendar's end (29-31) map to the last day of
// that month.
func DueDateFor(dueDay int, ref time.Time) time.Time {
	last := lastDayOfMonth(ref)
	if dueDay > last {
		dueDay = last
	}
	return time.Date(ref.Year(), ref.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}

// CoerceAmount converts an amount of unreliable type to a float
// pointer. ok is false only when a non-empty value could not be
// interpreted; the amount is nil in that case, never an error.
func CoerceAmount(v any) (amount *float64, ok bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case float64:
		f := t
		return &f, true
	case int:
		f := float64(t)
		return &f, true
	case string:
		s := cleanAmountString(t)
		if s == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	default:
		return nil, false
	}
}

// cleanAmountString strips currency symbols and separators, and turns
// accountant parentheses into a leading minus: (100.00) -> -100.00
func cleanAmountString(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	return s
}

// deriveDueDay prefers an explicit due-day field in [1,31]; otherwise
// it takes the day component of an ISO-format due-date string. Values
// out of range are discarded, never clamped.
func deriveDueDay(raw models.RawBill) (*int, []string) {
	var warnings []string

	if v, present := raw["due_day"]; present && v != nil {
		day, ok := coerceInt(v)
		switch {
		case !ok:
			warnings = append(warnings, fmt.Sprintf("unparseable due_day %v", v))
		case day < 1 || day > 31:
			warnings = append(warnings, fmt.Sprintf("due_day %d out of range [1,31]", day))
		default:
			return &day, warnings
		}
		return nil, warnings
	}

	if s := asString(raw["due_date"]); s != nil && *s != "" {
		// Only the YYYY-MM-DD prefix matters; timestamps may follow
		ds := *s
		if len(ds) > 10 {
			ds = ds[:10]
		}
		t, err := time.Parse("2006-01-02", ds)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unparseable due_date %q", *s))
			return nil, warnings
		}
		day := t.Day()
		return &day, warnings
	}

	return nil, warnings
}

// deriveID uses the raw id when present, else assigns bill_<n>
func deriveID(raw models.RawBill, ordinal int) string {
	if s := asString(raw["id"]); s != nil && *s != "" {
		return *s
	}
	return fmt.Sprintf("bill_%d", ordinal)
}

// deriveName collapses internal whitespace; absent or blank names are nil
func deriveName(v any) *string {
	s := asString(v)
	if s == nil {
		return nil
	}
	collapsed := strings.Join(strings.Fields(*s), " ")
	if collapsed == "" {
		return nil
	}
	return &collapsed
}

// paidFlag reports an explicit boolean paid flag, checking the "paid"
// field first and then "actual_paid"
func paidFlag(raw models.RawBill) (value, ok bool) {
	for _, key := range []string{"paid", "actual_paid"} {
		if b, isBool := raw[key].(bool); isBool {
			return b, true
		}
	}
	return false, false
}

func lowerOrDefault(v any, def string) string {
	if s := asString(v); s != nil && *s != "" {
		return strings.ToLower(*s)
	}
	return def
}

// asString coerces strings, numbers, and booleans to a trimmed string.
// Anything else (maps, slices, nil) is nil.
func asString(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	case int:
		s = strconv.Itoa(t)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil
	}
	return &s
}

// coerceInt accepts whole numbers and numeric strings
func coerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// truncateToDay reduces a reference time to its UTC calendar day.
// Status reasoning compares whole days; a wall-clock time past
// midnight must not push a bill due today into overdue.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(ref time.Time) int {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}
