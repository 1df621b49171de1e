package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/billingops/sccm-usage-report/internal/application/usecase"
	"github.com/billingops/sccm-usage-report/internal/domain/repository"
	"github.com/billingops/sccm-usage-report/internal/shared/types"
	"github.com/billingops/sccm-usage-report/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	configRepo    repository.ConfigRepository
	console       types.ConsoleInterface
	version       string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:     "sccm-usage-report",
		Short:   "SCCM end-of-month usage report generator",
		Version: version.FormatVersion(),
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "SCCM Usage Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("dsn", "", "Connection string for the billing warehouse")
	rootCmd.PersistentFlags().Int("year", 0, "Reporting year (default: the month before today; requires --period)")
	rootCmd.PersistentFlags().Int("period", 0, "Reporting period 1-12 (default: the month before today; requires --year)")
	rootCmd.PersistentFlags().StringP("identifier-filter", "f", "", "Substring an output row's identifiers must contain (required)")
	rootCmd.PersistentFlags().StringP("account-pattern", "A", "", "Optional LIKE pattern over account codes, e.g. 'EMEA%'")
	rootCmd.PersistentFlags().StringP("report-name", "n", "usage_report", "Base name for the report files (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Report types: csv, json, pdf, xlsx")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print INFO messages in addition to warnings and errors")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	dsn, _ := flags.GetString("dsn")
	year, _ := flags.GetInt("year")
	period, _ := flags.GetInt("period")
	identifierFilter, _ := flags.GetString("identifier-filter")
	accountPattern, _ := flags.GetString("account-pattern")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	verbose, _ := flags.GetBool("verbose")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:       configFile,
		DSN:              dsn,
		Year:             year,
		Period:           period,
		IdentifierFilter: identifierFilter,
		AccountPattern:   accountPattern,
		ReportName:       reportName,
		ReportType:       reportType,
		Dir:              dir,
		Verbose:          verbose,
	}

	return args, nil
}

// applyConfig fills in arguments the user did not pass on the command line
// from the config file. Flags always win over the file.
func (app *CLIApp) applyConfig(args *types.CLIArgs, cfg *types.Config) {
	flags := app.rootCmd.Flags()
	if !flags.Changed("dsn") && cfg.DSN != "" {
		args.DSN = cfg.DSN
	}
	if !flags.Changed("year") && cfg.Year != 0 {
		args.Year = cfg.Year
	}
	if !flags.Changed("period") && cfg.Period != 0 {
		args.Period = cfg.Period
	}
	if !flags.Changed("identifier-filter") && cfg.IdentifierFilter != "" {
		args.IdentifierFilter = cfg.IdentifierFilter
	}
	if !flags.Changed("account-pattern") && cfg.AccountPattern != "" {
		args.AccountPattern = cfg.AccountPattern
	}
	if !flags.Changed("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !flags.Changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !flags.Changed("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)

	args, err := app.parseArgs()
	if err != nil {
		return err
	}

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		app.applyConfig(args, cfg)
	}

	if v, ok := app.console.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(args.Verbose)
	}

	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, args)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetConfigRepository sets the config file loader for the CLI app.
func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}

// SetConsole sets the console used for banner-time verbosity control.
func (app *CLIApp) SetConsole(console types.ConsoleInterface) {
	app.console = console
}
