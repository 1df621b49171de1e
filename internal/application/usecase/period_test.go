package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		ref        time.Time
		wantYear   int
		wantPeriod int
	}{
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), 2023, 12},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 2024, 1},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 2024, 2},
		{time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), 2024, 2},
		{time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), 2024, 3},
		{time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), 2024, 4},
		{time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), 2024, 5},
		{time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC), 2024, 6},
		{time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC), 2024, 7},
		{time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), 2024, 8},
		{time.Date(2024, time.October, 12, 0, 0, 0, 0, time.UTC), 2024, 9},
		{time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), 2024, 10},
		{time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC), 2024, 11},
		// Leap-year February boundary: March 1st of a leap year still
		// resolves to February of the same year.
		{time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), 2024, 2},
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 2025, 2},
	}

	for _, tt := range tests {
		t.Run(tt.ref.Format("2006-01-02"), func(t *testing.T) {
			year, period := PreviousPeriod(tt.ref)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantPeriod, period)
		})
	}
}
