package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DSN              string   `json:"dsn" yaml:"dsn" toml:"dsn"`
	Year             int      `json:"year" yaml:"year" toml:"year"`
	Period           int      `json:"period" yaml:"period" toml:"period"`
	IdentifierFilter string   `json:"identifier_filter" yaml:"identifier_filter" toml:"identifier_filter"`
	AccountPattern   string   `json:"account_pattern" yaml:"account_pattern" toml:"account_pattern"`
	ReportName       string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType       []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir              string   `json:"dir" yaml:"dir" toml:"dir"`
}
