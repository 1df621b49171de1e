package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
	"github.com/billingops/sccm-usage-report/internal/domain/repository"
)

// Dates serialize as CCYYMMDD in every text rendition of the report.
const dateLayout = "20060102"

var reportColumns = []string{
	"Year", "Period", "AccountCode", "UsageStartDate", "UsageEndDate",
	"DetailLine", "numRUs", "RUs", "numIdentifiers", "identifiers",
}

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new ExportRepository implementation.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes the report rows as delimited text. Rows are written by
// hand instead of through encoding/csv: the AccountCode and identifiers
// fields carry literal double quotes that the downstream end-of-month loader
// expects verbatim, and a conforming CSV encoder would escape them.
func (r *ExportRepositoryImpl) ExportToCSV(rows []entity.ReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	for _, row := range rows {
		if _, err := fmt.Fprintln(file, strings.Join(reportFields(row), ",")); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(rows []entity.ReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(rows []entity.ReportRow, filename, outputDir string, year, period int) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  SCCM Usage Report - Period %d-%02d", year, period)), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	widths := []float64{14, 14, 34, 24, 24, 18, 16, 60, 22, 51}

	pdf.SetFont("Arial", "B", 8)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, col := range reportColumns {
		pdf.CellFormat(widths[i], 7, tr(col), "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range rows {
		fields := reportFields(row)
		for i, field := range fields {
			// Long serialized lists are clipped to the cell; the CSV is the
			// authoritative rendition.
			pdf.CellFormat(widths[i], 6, tr(field), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.Ln(4)
		pdf.Cell(0, 8, tr("No rows matched the report filters."))
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToXLSX(rows []entity.ReportRow, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	const sheet = "Usage Report"
	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("error creating XLSX sheet: %w", err)
	}
	workbook.SetActiveSheet(index)
	workbook.DeleteSheet("Sheet1")

	for i, col := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := workbook.SetCellValue(sheet, cell, col); err != nil {
			return "", fmt.Errorf("error writing XLSX header: %w", err)
		}
	}
	for rowIdx, row := range rows {
		for colIdx, field := range reportFields(row) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := workbook.SetCellValue(sheet, cell, field); err != nil {
				return "", fmt.Errorf("error writing XLSX row: %w", err)
			}
		}
	}

	if err := workbook.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// reportFields renders one report row in the fixed output column order.
func reportFields(row entity.ReportRow) []string {
	return []string{
		strconv.Itoa(row.Year),
		strconv.Itoa(row.Period),
		row.AccountCode,
		row.UsageStartDate.Format(dateLayout),
		row.UsageEndDate.Format(dateLayout),
		strconv.Itoa(row.DetailLine),
		strconv.Itoa(row.NumRateCodes),
		row.RateList,
		strconv.Itoa(row.NumIdentifiers),
		row.IdentifierList,
	}
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
