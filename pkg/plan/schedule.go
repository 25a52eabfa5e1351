// Package plan decomposes a goal into a quarter/month schedule of sub-goals,
// keeps that schedule in step with the goal's persisted milestones, and
// derives progress and health numbers from it.
package plan

import (
	"fmt"
	"math"
	"time"
)

// DefaultMonths is the window length used when a goal has no target date.
const DefaultMonths = 6

// SubGoal is a milestone placed into its month.
type SubGoal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MonthBlock holds the sub-goals scheduled for one calendar month.
type MonthBlock struct {
	Month    string    `json:"month"` // "YYYY-MM"
	Label    string    `json:"label"` // "Jan 2024"
	SubGoals []SubGoal `json:"sub_goals"`
}

// QuarterBlock groups up to three consecutive months.
type QuarterBlock struct {
	ID     string       `json:"id"`    // "q1"
	Label  string       `json:"label"` // "Q1 (Jan – Mar)"
	Months []MonthBlock `json:"months"`
}

// MonthSpan selects how a target date is turned into a month count.
type MonthSpan string

const (
	// SpanCalendar counts the calendar months between creation and target,
	// rounding a partial month up.
	SpanCalendar MonthSpan = "calendar"
	// SpanThirtyDay divides the elapsed days by 30 and rounds up.
	SpanThirtyDay MonthSpan = "thirty_day"
)

// ParseMonthSpan validates a configured span name.
func ParseMonthSpan(s string) (MonthSpan, error) {
	switch MonthSpan(s) {
	case SpanCalendar, SpanThirtyDay:
		return MonthSpan(s), nil
	}
	return "", fmt.Errorf("invalid month span %q (use calendar or thirty_day)", s)
}

// TotalMonths returns the length of a goal's window in months. A nil target
// yields defaultMonths; a target on or before created yields 1.
func TotalMonths(created time.Time, target *time.Time, defaultMonths int, span MonthSpan) int {
	if target == nil || target.IsZero() {
		return max(defaultMonths, 1)
	}

	var months int
	switch span {
	case SpanThirtyDay:
		days := target.Sub(created).Hours() / 24
		months = int(math.Ceil(days / 30))
	default:
		months = (target.Year()-created.Year())*12 + int(target.Month()) - int(created.Month())
		if target.After(created.AddDate(0, months, 0)) {
			months++
		}
	}
	return max(months, 1)
}

// GenerateQuarters lays out totalMonths months starting at start's month,
// three to a quarter. The final quarter holds the remainder.
func GenerateQuarters(start time.Time, totalMonths int) []QuarterBlock {
	totalMonths = max(totalMonths, 1)

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	quarters := make([]QuarterBlock, 0, (totalMonths+2)/3)

	for offset := 0; offset < totalMonths; offset += 3 {
		n := min(3, totalMonths-offset)
		q := QuarterBlock{
			ID:     fmt.Sprintf("q%d", len(quarters)+1),
			Months: make([]MonthBlock, 0, n),
		}
		for i := 0; i < n; i++ {
			m := first.AddDate(0, offset+i, 0)
			q.Months = append(q.Months, MonthBlock{
				Month: MonthKey(m),
				Label: m.Format("Jan 2006"),
			})
		}
		q.Label = fmt.Sprintf("Q%d (%s – %s)", len(quarters)+1,
			monthAbbrev(q.Months[0].Month), monthAbbrev(q.Months[n-1].Month))
		quarters = append(quarters, q)
	}
	return quarters
}

// MonthKey formats t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

func monthAbbrev(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan")
}

// Months returns every month block of the schedule in calendar order.
func Months(quarters []QuarterBlock) []MonthBlock {
	var months []MonthBlock
	for _, q := range quarters {
		months = append(months, q.Months...)
	}
	return months
}

// DefaultMonth is where a new sub-goal goes when no month is given: current
// when it falls inside the schedule, else the first month. It is empty for
// an empty schedule.
func DefaultMonth(quarters []QuarterBlock, current string) string {
	months := Months(quarters)
	if len(months) == 0 {
		return ""
	}
	for _, m := range months {
		if m.Month == current {
			return current
		}
	}
	return months[0].Month
}
