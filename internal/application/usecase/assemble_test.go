package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

func testRatePivot(account string) entity.RatePivotRow {
	return entity.RatePivotRow{
		Year:         2024,
		Period:       3,
		AccountCode:  account,
		NumRateCodes: 1,
		RateList:     "CPU1,100,0.500000,50.00",
	}
}

func testWindow(account string) entity.UsageWindow {
	return entity.UsageWindow{
		Year:           2024,
		Period:         3,
		AccountCode:    account,
		UsageStartDate: day(2024, time.March, 1),
		UsageEndDate:   day(2024, time.March, 31),
	}
}

func testLineIndex(account string, uid int64, line int) entity.DetailLineIndexEntry {
	return entity.DetailLineIndexEntry{
		Year:          2024,
		Period:        3,
		AccountCode:   account,
		DetailUID:     uid,
		MaxDetailLine: line,
	}
}

func testIdentPivot(uid int64, line int, list string) entity.IdentifierPivotRow {
	return entity.IdentifierPivotRow{
		LoadTrackingUID: 10,
		DetailUID:       uid,
		DetailLine:      line,
		NumIdentifiers:  1,
		IdentifierList:  list,
	}
}

func TestAssembleReportBuildsRow(t *testing.T) {
	rows := AssembleReport(
		[]entity.RatePivotRow{testRatePivot("ACME")},
		[]entity.UsageWindow{testWindow("ACME")},
		[]entity.DetailLineIndexEntry{testLineIndex("ACME", 1, 1)},
		[]entity.IdentifierPivotRow{testIdentPivot(1, 1, `TEAM,"emeaprddgzsccm"`)},
		ReportFilter{IdentifierSubstring: "emeaprddgzsccm"},
	)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 2024, row.Year)
	assert.Equal(t, 3, row.Period)
	assert.Equal(t, `"ACME"`, row.AccountCode)
	assert.Equal(t, 1, row.DetailLine)
	assert.Equal(t, 1, row.NumRateCodes)
	assert.Equal(t, "CPU1,100,0.500000,50.00", row.RateList)
	assert.Equal(t, 1, row.NumIdentifiers)
	assert.Equal(t, `TEAM,"emeaprddgzsccm"`, row.IdentifierList)
}

func TestAssembleReportExcludesLinesWithoutIdentifierMatch(t *testing.T) {
	// The identifier join is inner: a detail line with no pivoted
	// identifiers yields no output row.
	rows := AssembleReport(
		[]entity.RatePivotRow{testRatePivot("ACME")},
		[]entity.UsageWindow{testWindow("ACME")},
		[]entity.DetailLineIndexEntry{testLineIndex("ACME", 1, 1)},
		nil,
		ReportFilter{IdentifierSubstring: "emeaprddgzsccm"},
	)

	assert.Empty(t, rows)
}

func TestAssembleReportIdentifierFilterIsCaseSensitive(t *testing.T) {
	rates := []entity.RatePivotRow{testRatePivot("ACME")}
	windows := []entity.UsageWindow{testWindow("ACME")}
	lines := []entity.DetailLineIndexEntry{testLineIndex("ACME", 1, 1)}
	idents := []entity.IdentifierPivotRow{testIdentPivot(1, 1, `TEAM,"other"`)}

	rows := AssembleReport(rates, windows, lines, idents,
		ReportFilter{IdentifierSubstring: "emeaprddgzsccm"})
	assert.Empty(t, rows)

	rows = AssembleReport(rates, windows, lines, idents,
		ReportFilter{IdentifierSubstring: "other"})
	assert.Len(t, rows, 1)

	rows = AssembleReport(rates, windows, lines, idents,
		ReportFilter{IdentifierSubstring: "OTHER"})
	assert.Empty(t, rows)
}

func TestAssembleReportAccountPattern(t *testing.T) {
	rates := []entity.RatePivotRow{testRatePivot("EMEA01"), testRatePivot("APAC01")}
	windows := []entity.UsageWindow{testWindow("EMEA01"), testWindow("APAC01")}
	lines := []entity.DetailLineIndexEntry{
		testLineIndex("EMEA01", 1, 1),
		testLineIndex("APAC01", 2, 1),
	}
	idents := []entity.IdentifierPivotRow{
		testIdentPivot(1, 1, `TEAM,"x"`),
		testIdentPivot(2, 1, `TEAM,"x"`),
	}

	rows := AssembleReport(rates, windows, lines, idents,
		ReportFilter{IdentifierSubstring: "x", AccountPattern: "EMEA%"})

	require.Len(t, rows, 1)
	assert.Equal(t, `"EMEA01"`, rows[0].AccountCode)
}

func TestAssembleReportOrdersByAccount(t *testing.T) {
	rates := []entity.RatePivotRow{testRatePivot("BBB"), testRatePivot("AAA")}
	windows := []entity.UsageWindow{testWindow("BBB"), testWindow("AAA")}
	lines := []entity.DetailLineIndexEntry{
		testLineIndex("BBB", 2, 1),
		testLineIndex("AAA", 1, 1),
	}
	idents := []entity.IdentifierPivotRow{
		testIdentPivot(1, 1, `TEAM,"x"`),
		testIdentPivot(2, 1, `TEAM,"x"`),
	}

	rows := AssembleReport(rates, windows, lines, idents,
		ReportFilter{IdentifierSubstring: "x"})

	require.Len(t, rows, 2)
	assert.Equal(t, `"AAA"`, rows[0].AccountCode)
	assert.Equal(t, `"BBB"`, rows[1].AccountCode)
}

func TestAssembleReportMultipleUIDsPerAccount(t *testing.T) {
	rows := AssembleReport(
		[]entity.RatePivotRow{testRatePivot("ACME")},
		[]entity.UsageWindow{testWindow("ACME")},
		[]entity.DetailLineIndexEntry{
			testLineIndex("ACME", 1, 3),
			testLineIndex("ACME", 2, 7),
		},
		[]entity.IdentifierPivotRow{
			testIdentPivot(1, 3, `TEAM,"x"`),
			testIdentPivot(2, 7, `TEAM,"x"`),
		},
		ReportFilter{IdentifierSubstring: "x"},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].DetailLine)
	assert.Equal(t, 7, rows[1].DetailLine)
}

func TestLikeMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"EMEA%", "EMEA01", true},
		{"EMEA%", "APAC01", false},
		{"%sccm%", "emeaprddgzsccm01", true},
		{"%01", "EMEA01", true},
		{"%01", "EMEA02", false},
		{"ACME", "ACME", true},
		{"ACME", "ACME2", false},
		{"A%C%E", "ABCDE", true},
		{"%", "anything", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, likeMatch(tt.pattern, tt.s), "pattern %q against %q", tt.pattern, tt.s)
	}
}
