package usecase

import (
	"sort"
	"time"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

// Correlate left-outer-joins summary records to detail records. A detail
// matches a summary when the account code, rate code and billing-cycle bounds
// (summary StartDate/EndDate against detail accounting dates) are equal and
// the usage dates agree once truncated to the day. A summary matching several
// details fans out into several rows; a summary matching none keeps a nil
// Detail. The result is ordered so downstream grouping is reproducible.
func Correlate(summaries []entity.SummaryRecord, details []entity.DetailRecord) []entity.CorrelatedRow {
	rows := make([]entity.CorrelatedRow, 0, len(summaries))
	for _, s := range summaries {
		matched := false
		for i := range details {
			if !detailMatches(s, details[i]) {
				continue
			}
			d := details[i]
			rows = append(rows, entity.CorrelatedRow{Summary: s, Detail: &d})
			matched = true
		}
		if !matched {
			rows = append(rows, entity.CorrelatedRow{Summary: s})
		}
	}
	sortCorrelated(rows)
	return rows
}

func detailMatches(s entity.SummaryRecord, d entity.DetailRecord) bool {
	if s.AccountCode != d.AccountCode || s.RateCode != d.RateCode {
		return false
	}
	if !s.StartDate.Equal(d.AccountingStartDate) || !s.EndDate.Equal(d.AccountingEndDate) {
		return false
	}
	return sameDay(s.UsageStartDate, d.StartDate) && sameDay(s.UsageEndDate, d.EndDate)
}

// sameDay compares two timestamps truncated to their calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sortCorrelated(rows []entity.CorrelatedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := compareSummaryKey(a.Summary, b.Summary); c != 0 {
			return c < 0
		}
		if c := compareDetailDates(a.Detail, b.Detail); c != 0 {
			return c < 0
		}
		if a.Summary.RateCode != b.Summary.RateCode {
			return a.Summary.RateCode < b.Summary.RateCode
		}
		if !a.Summary.StartDate.Equal(b.Summary.StartDate) {
			return a.Summary.StartDate.Before(b.Summary.StartDate)
		}
		if !a.Summary.EndDate.Equal(b.Summary.EndDate) {
			return a.Summary.EndDate.Before(b.Summary.EndDate)
		}
		return a.Summary.RateTable < b.Summary.RateTable
	})
}

func compareSummaryKey(a, b entity.SummaryRecord) int {
	switch {
	case a.Year != b.Year:
		return a.Year - b.Year
	case a.Period != b.Period:
		return a.Period - b.Period
	case a.AccountCode != b.AccountCode:
		if a.AccountCode < b.AccountCode {
			return -1
		}
		return 1
	case !a.UsageStartDate.Equal(b.UsageStartDate):
		if a.UsageStartDate.Before(b.UsageStartDate) {
			return -1
		}
		return 1
	case !a.UsageEndDate.Equal(b.UsageEndDate):
		if a.UsageEndDate.Before(b.UsageEndDate) {
			return -1
		}
		return 1
	}
	return 0
}

// compareDetailDates orders unmatched rows before matched ones, then by the
// detail's own date pair.
func compareDetailDates(a, b *entity.DetailRecord) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case !a.StartDate.Equal(b.StartDate):
		if a.StartDate.Before(b.StartDate) {
			return -1
		}
		return 1
	case !a.EndDate.Equal(b.EndDate):
		if a.EndDate.Before(b.EndDate) {
			return -1
		}
		return 1
	}
	return 0
}

// IndexDetailLines groups correlated rows by (Year, Period, AccountCode,
// DetailUID) and keeps the highest detail line seen per group. Rows without
// a correlated detail contribute nothing.
func IndexDetailLines(rows []entity.CorrelatedRow) []entity.DetailLineIndexEntry {
	type key struct {
		year, period int
		accountCode  string
		detailUID    int64
	}
	maxLines := make(map[key]int)
	for _, r := range rows {
		if r.Detail == nil {
			continue
		}
		k := key{r.Summary.Year, r.Summary.Period, r.Summary.AccountCode, r.Detail.DetailUID}
		if line, ok := maxLines[k]; !ok || r.Detail.DetailLine > line {
			maxLines[k] = r.Detail.DetailLine
		}
	}

	entries := make([]entity.DetailLineIndexEntry, 0, len(maxLines))
	for k, line := range maxLines {
		entries = append(entries, entity.DetailLineIndexEntry{
			Year:          k.year,
			Period:        k.period,
			AccountCode:   k.accountCode,
			DetailUID:     k.detailUID,
			MaxDetailLine: line,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.AccountCode != b.AccountCode {
			return a.AccountCode < b.AccountCode
		}
		return a.DetailUID < b.DetailUID
	})
	return entries
}
