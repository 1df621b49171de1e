package usecase

import (
	"sort"
	"strings"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

// ReportFilter narrows the assembled report. IdentifierSubstring is the
// required scope filter: only rows whose serialized identifier list contains
// it (case sensitive) survive. AccountPattern is an optional SQL LIKE style
// pattern over the unquoted account code; empty means no account filtering.
type ReportFilter struct {
	IdentifierSubstring string
	AccountPattern      string
}

// AssembleReport joins the pivoted rates, usage windows, detail-line index
// and pivoted identifiers into the final rows. Unlike the earlier summary to
// detail correlation these joins are inner: a detail line without both a
// rate pivot and an identifier pivot is excluded. Rows come out ordered by
// (Year, Period, AccountCode, UsageStartDate, UsageEndDate).
func AssembleReport(
	ratePivots []entity.RatePivotRow,
	windows []entity.UsageWindow,
	lineIndex []entity.DetailLineIndexEntry,
	identPivots []entity.IdentifierPivotRow,
	filter ReportFilter,
) []entity.ReportRow {
	type accountKey struct {
		year, period int
		accountCode  string
	}
	rateByAccount := make(map[accountKey]entity.RatePivotRow, len(ratePivots))
	for _, r := range ratePivots {
		rateByAccount[accountKey{r.Year, r.Period, r.AccountCode}] = r
	}
	windowByAccount := make(map[accountKey]entity.UsageWindow, len(windows))
	for _, w := range windows {
		windowByAccount[accountKey{w.Year, w.Period, w.AccountCode}] = w
	}

	type lineKey struct {
		detailUID  int64
		detailLine int
	}
	identByLine := make(map[lineKey]entity.IdentifierPivotRow, len(identPivots))
	for _, p := range identPivots {
		identByLine[lineKey{p.DetailUID, p.DetailLine}] = p
	}

	rows := make([]entity.ReportRow, 0, len(lineIndex))
	for _, le := range lineIndex {
		k := accountKey{le.Year, le.Period, le.AccountCode}
		rate, ok := rateByAccount[k]
		if !ok {
			continue
		}
		window, ok := windowByAccount[k]
		if !ok {
			continue
		}
		ident, ok := identByLine[lineKey{le.DetailUID, le.MaxDetailLine}]
		if !ok {
			continue
		}
		if filter.AccountPattern != "" && !likeMatch(filter.AccountPattern, le.AccountCode) {
			continue
		}
		if !strings.Contains(ident.IdentifierList, filter.IdentifierSubstring) {
			continue
		}
		rows = append(rows, entity.ReportRow{
			Year:           le.Year,
			Period:         le.Period,
			AccountCode:    `"` + le.AccountCode + `"`,
			UsageStartDate: window.UsageStartDate,
			UsageEndDate:   window.UsageEndDate,
			DetailLine:     le.MaxDetailLine,
			NumRateCodes:   rate.NumRateCodes,
			RateList:       rate.RateList,
			NumIdentifiers: ident.NumIdentifiers,
			IdentifierList: ident.IdentifierList,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.AccountCode != b.AccountCode {
			return a.AccountCode < b.AccountCode
		}
		if !a.UsageStartDate.Equal(b.UsageStartDate) {
			return a.UsageStartDate.Before(b.UsageStartDate)
		}
		if !a.UsageEndDate.Equal(b.UsageEndDate) {
			return a.UsageEndDate.Before(b.UsageEndDate)
		}
		return a.DetailLine < b.DetailLine
	})
	return rows
}

// likeMatch evaluates a SQL LIKE style pattern where % matches any run of
// characters. A pattern without % is an exact match.
func likeMatch(pattern, s string) bool {
	parts := strings.Split(pattern, "%")
	if len(parts) == 1 {
		return s == pattern
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}
