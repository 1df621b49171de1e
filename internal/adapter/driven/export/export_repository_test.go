package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

func sampleRow() entity.ReportRow {
	return entity.ReportRow{
		Year:           2024,
		Period:         3,
		AccountCode:    `"ACME"`,
		UsageStartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		UsageEndDate:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		DetailLine:     1,
		NumRateCodes:   1,
		RateList:       "CPU1,100,0.500000,50.00",
		NumIdentifiers: 1,
		IdentifierList: `TEAM,"emeaprddgzsccm"`,
	}
}

func TestExportToCSVWritesRawQuotes(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToCSV([]entity.ReportRow{sampleRow()}, "usage_report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// One line per row, dates as CCYYMMDD, quotes exactly as produced by
	// the pipeline: no CSV escaping, no header.
	want := `2024,3,"ACME",20240301,20240331,1,1,CPU1,100,0.500000,50.00,1,TEAM,"emeaprddgzsccm"` + "\n"
	assert.Equal(t, want, string(data))
}

func TestExportToCSVEmptyReport(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToCSV(nil, "usage_report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExportToJSON(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToJSON([]entity.ReportRow{sampleRow()}, "usage_report", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []entity.ReportRow
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, `"ACME"`, decoded[0].AccountCode)
	assert.Equal(t, "CPU1,100,0.500000,50.00", decoded[0].RateList)
}

func TestExportToXLSX(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToXLSX([]entity.ReportRow{sampleRow()}, "usage_report", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportToPDF(t *testing.T) {
	repo := &ExportRepositoryImpl{}
	dir := t.TempDir()

	path, err := repo.ExportToPDF([]entity.ReportRow{sampleRow()}, "usage_report", dir, 2024, 3)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReportFieldsColumnOrder(t *testing.T) {
	fields := reportFields(sampleRow())

	require.Len(t, fields, len(reportColumns))
	assert.Equal(t, "2024", fields[0])
	assert.Equal(t, "3", fields[1])
	assert.Equal(t, `"ACME"`, fields[2])
	assert.Equal(t, "20240301", fields[3])
	assert.Equal(t, "20240331", fields[4])
	assert.Equal(t, "1", fields[5])
	assert.Equal(t, "1", fields[6])
	assert.Equal(t, "CPU1,100,0.500000,50.00", fields[7])
	assert.Equal(t, "1", fields[8])
	assert.Equal(t, `TEAM,"emeaprddgzsccm"`, fields[9])
}
