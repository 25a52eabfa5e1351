package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthSizes(quarters []QuarterBlock) []int {
	var sizes []int
	for _, q := range quarters {
		sizes = append(sizes, len(q.Months))
	}
	return sizes
}

func TestGenerateQuartersPartitions(t *testing.T) {
	quarters := GenerateQuarters(date(2024, 1, 10), 7)

	require.Len(t, quarters, 3)
	assert.Equal(t, []int{3, 3, 1}, monthSizes(quarters))
	assert.Equal(t, "q1", quarters[0].ID)
	assert.Equal(t, "Q1 (Jan – Mar)", quarters[0].Label)
	assert.Equal(t, "Q2 (Apr – Jun)", quarters[1].Label)
	assert.Equal(t, "Q3 (Jul – Jul)", quarters[2].Label)

	first := quarters[0].Months[0]
	assert.Equal(t, "2024-01", first.Month)
	assert.Equal(t, "Jan 2024", first.Label)
	assert.Empty(t, first.SubGoals)
}

func TestGenerateQuartersYearRollover(t *testing.T) {
	quarters := GenerateQuarters(date(2024, 11, 5), 4)

	var keys []string
	for _, m := range Months(quarters) {
		keys = append(keys, m.Month)
	}
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01", "2025-02"}, keys)
	assert.Equal(t, "Q1 (Nov – Jan)", quarters[0].Label)
	assert.Equal(t, "Feb 2025", quarters[1].Months[0].Label)
}

func TestGenerateQuartersAlwaysOneMonth(t *testing.T) {
	for _, n := range []int{0, -3} {
		quarters := GenerateQuarters(date(2024, 5, 31), n)
		require.Len(t, quarters, 1)
		assert.Equal(t, []int{1}, monthSizes(quarters))
		assert.Equal(t, "2024-05", quarters[0].Months[0].Month)
	}
}

func TestTotalMonths(t *testing.T) {
	created := date(2024, 1, 1)
	target := func(tm time.Time) *time.Time { return &tm }

	tests := []struct {
		name   string
		target *time.Time
		span   MonthSpan
		want   int
	}{
		{"no target", nil, SpanCalendar, 6},
		{"half year calendar", target(date(2024, 6, 30)), SpanCalendar, 6},
		{"half year thirty day", target(date(2024, 6, 30)), SpanThirtyDay, 7},
		{"exact month", target(date(2024, 2, 1)), SpanCalendar, 1},
		{"one day over", target(date(2024, 2, 2)), SpanCalendar, 2},
		{"target in past", target(date(2023, 12, 1)), SpanCalendar, 1},
		{"target in past thirty day", target(date(2023, 12, 1)), SpanThirtyDay, 1},
		{"same day", target(created), SpanThirtyDay, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalMonths(created, tt.target, DefaultMonths, tt.span))
		})
	}
}

// A half year counts as six calendar months but seven thirty-day blocks.
func TestTotalMonthsHalfYearBySpan(t *testing.T) {
	created, target := date(2024, 1, 1), date(2024, 6, 30)
	assert.Equal(t, 6, TotalMonths(created, &target, DefaultMonths, SpanCalendar))
	assert.Equal(t, 7, TotalMonths(created, &target, DefaultMonths, SpanThirtyDay))
	assert.Len(t, Months(GenerateQuarters(created, 6)), 6)
}

func TestTotalMonthsDefaultNeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, TotalMonths(date(2024, 1, 1), nil, 0, SpanCalendar))
	assert.Equal(t, 12, TotalMonths(date(2024, 1, 1), nil, 12, SpanCalendar))
}

func TestParseMonthSpan(t *testing.T) {
	span, err := ParseMonthSpan("thirty_day")
	require.NoError(t, err)
	assert.Equal(t, SpanThirtyDay, span)

	_, err = ParseMonthSpan("weekly")
	assert.Error(t, err)
}

func TestDefaultMonth(t *testing.T) {
	quarters := GenerateQuarters(date(2024, 1, 1), 4)

	assert.Equal(t, "2024-03", DefaultMonth(quarters, "2024-03"))
	assert.Equal(t, "2024-01", DefaultMonth(quarters, "2023-12"))
	assert.Equal(t, "2024-01", DefaultMonth(quarters, "2024-05"))
	assert.Empty(t, DefaultMonth(nil, "2024-01"))
}
