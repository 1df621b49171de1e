package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/billingops/sccm-usage-report/internal/domain/entity"
	"github.com/billingops/sccm-usage-report/internal/domain/repository"
	"github.com/billingops/sccm-usage-report/internal/shared/types"
)

// ReportUseCase runs the end-of-month usage report pipeline.
type ReportUseCase struct {
	billingFactory repository.BillingRepositoryFactory
	exportRepo     repository.ExportRepository
	console        types.ConsoleInterface

	// Now supplies the reference date for period resolution. Injected so
	// runs are deterministic under test.
	Now func() time.Time
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	billingFactory repository.BillingRepositoryFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		billingFactory: billingFactory,
		exportRepo:     exportRepo,
		console:        console,
		Now:            time.Now,
	}
}

// ResolvePeriod returns the reporting period: the CLI override when given
// (both halves required), otherwise the month before the reference date.
func (uc *ReportUseCase) ResolvePeriod(args *types.CLIArgs) (year, period int, err error) {
	if args.Year != 0 || args.Period != 0 {
		if args.Year == 0 || args.Period == 0 {
			return 0, 0, types.ErrPartialPeriodOverride
		}
		return args.Year, args.Period, nil
	}
	year, period = PreviousPeriod(uc.Now())
	return year, period, nil
}

// RunReport executes the whole pipeline: bulk-load the four sources, run the
// pure transformation stages, export one report file per requested type.
// Either the full ordered row set is produced or the run fails with nothing
// emitted.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.DSN == "" {
		return types.ErrMissingDSN
	}
	if args.IdentifierFilter == "" {
		return types.ErrMissingIdentifierFilter
	}
	year, period, err := uc.ResolvePeriod(args)
	if err != nil {
		return err
	}
	uc.console.LogInfo("Reporting period resolved to %d-%02d", year, period)

	billingRepo, err := uc.billingFactory(args.DSN)
	if err != nil {
		return fmt.Errorf("connecting to billing source: %w", err)
	}
	defer billingRepo.Close()

	status := uc.console.Status(fmt.Sprintf("Loading billing sources for period %d-%02d...", year, period))

	// The four sources are independent snapshots; fetch them concurrently.
	// Any failure aborts the run before a single row is assembled.
	var (
		summaries   []entity.SummaryRecord
		details     []entity.DetailRecord
		assignments []entity.IdentifierAssignment
		names       []entity.IdentifierName
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summaries, err = billingRepo.GetSummaryRecords(gctx, year, period)
		return err
	})
	g.Go(func() (err error) {
		details, err = billingRepo.GetDetailRecords(gctx)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = billingRepo.GetIdentifierAssignments(gctx)
		return err
	})
	g.Go(func() (err error) {
		names, err = billingRepo.GetIdentifierNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		status.Stop()
		return fmt.Errorf("reading billing sources: %w", err)
	}
	uc.console.LogInfo("Loaded %d summary, %d detail, %d identifier rows",
		len(summaries), len(details), len(assignments))

	status.Update("Correlating summary and detail records...")
	correlated := Correlate(summaries, details)
	if extra := len(correlated) - len(summaries); extra > 0 {
		uc.console.LogWarning("%d summary rows matched more than one detail row; keeping all matches", extra)
	}
	lineIndex := IndexDetailLines(correlated)

	status.Update("Aggregating and pivoting...")
	// Totals and usage windows come straight from the summary snapshot; the
	// correlated rows fan out on multiple matches and must never feed sums.
	ratePivots := PivotRates(AggregateRates(summaries))
	windows := AggregateUsageWindows(summaries)
	identPivots := PivotIdentifiers(assignments, names, details)

	status.Update("Assembling report rows...")
	rows := AssembleReport(ratePivots, windows, lineIndex, identPivots, ReportFilter{
		IdentifierSubstring: args.IdentifierFilter,
		AccountPattern:      args.AccountPattern,
	})
	status.Stop()

	if len(rows) == 0 {
		uc.console.LogWarning("Report for period %d-%02d is empty after filtering", year, period)
	} else {
		uc.console.Print(uc.renderAccountSummary(rows))
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "csv":
			path, err := uc.exportRepo.ExportToCSV(rows, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(rows, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(rows, args.ReportName, args.Dir, year, period)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", path)
			}
		case "xlsx":
			path, err := uc.exportRepo.ExportToXLSX(rows, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to XLSX: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to XLSX: %s", path)
			}
		default:
			uc.console.LogError("Unsupported report type: %s (expected csv, json, pdf or xlsx)", reportType)
		}
	}

	uc.console.LogInfo("Report complete: %d rows for period %d-%02d", len(rows), year, period)
	return nil
}

// renderAccountSummary builds the per-account console table shown after a
// successful run.
func (uc *ReportUseCase) renderAccountSummary(rows []entity.ReportRow) string {
	table := uc.console.CreateTable()
	table.AddColumn("Account")
	table.AddColumn("Detail Lines")
	table.AddColumn("Rate Codes")
	table.AddColumn("Usage Start")
	table.AddColumn("Usage End")

	type accountTotals struct {
		row   entity.ReportRow
		lines int
	}
	order := []string{}
	totals := map[string]*accountTotals{}
	for _, r := range rows {
		t, ok := totals[r.AccountCode]
		if !ok {
			t = &accountTotals{row: r}
			totals[r.AccountCode] = t
			order = append(order, r.AccountCode)
		}
		t.lines++
	}
	for _, account := range order {
		t := totals[account]
		table.AddRow(
			account,
			t.lines,
			t.row.NumRateCodes,
			t.row.UsageStartDate.Format("2006-01-02"),
			t.row.UsageEndDate.Format("2006-01-02"),
		)
	}
	return table.Render()
}
