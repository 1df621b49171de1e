package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile       string
	DSN              string
	Year             int
	Period           int
	IdentifierFilter string
	AccountPattern   string
	ReportName       string
	ReportType       []string
	Dir              string
	Verbose          bool
}
