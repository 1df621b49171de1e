package main

import (
	"fmt"
	"os"

	"github.com/billingops/sccm-usage-report/internal/adapter/driven/config"
	"github.com/billingops/sccm-usage-report/internal/adapter/driven/db"
	"github.com/billingops/sccm-usage-report/internal/adapter/driven/export"
	"github.com/billingops/sccm-usage-report/internal/adapter/driving/cli"
	"github.com/billingops/sccm-usage-report/internal/application/usecase"
	"github.com/billingops/sccm-usage-report/internal/domain/repository"
	"github.com/billingops/sccm-usage-report/pkg/console"
	"github.com/billingops/sccm-usage-report/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// The warehouse connection is opened per run, once flags and config file
	// are merged and the DSN is known.
	billingFactory := func(dsn string) (repository.BillingRepository, error) {
		return db.NewBillingRepository(dsn)
	}

	reportUseCase := usecase.NewReportUseCase(billingFactory, exportRepo, consoleImpl)

	app.SetReportUseCase(reportUseCase)
	app.SetConfigRepository(configRepo)
	app.SetConsole(consoleImpl)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
