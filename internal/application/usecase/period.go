package usecase

import "time"

// PreviousPeriod returns the year and month of the calendar month immediately
// preceding ref's month: the month of (first day of ref's month minus one
// day). January rolls back to December of the prior year.
func PreviousPeriod(ref time.Time) (year, period int) {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	lastOfPrior := firstOfMonth.AddDate(0, 0, -1)
	return lastOfPrior.Year(), int(lastOfPrior.Month())
}
