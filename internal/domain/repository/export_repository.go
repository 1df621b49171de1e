package repository

import (
	"github.com/billingops/sccm-usage-report/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(rows []entity.ReportRow, filename string, outputDir string) (string, error)
	ExportToJSON(rows []entity.ReportRow, filename string, outputDir string) (string, error)
	ExportToPDF(rows []entity.ReportRow, filename string, outputDir string, year, period int) (string, error)
	ExportToXLSX(rows []entity.ReportRow, filename string, outputDir string) (string, error)
}
