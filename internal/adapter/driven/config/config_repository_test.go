package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
dsn = "postgres://sccm:secret@db:5432/sccm"
year = 2023
period = 11
identifier_filter = "emeaprddgzsccm"
account_pattern = "EMEA%"
report_name = "usage_report"
report_type = ["csv", "json"]
dir = "/tmp/reports"
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://sccm:secret@db:5432/sccm", cfg.DSN)
	assert.Equal(t, 2023, cfg.Year)
	assert.Equal(t, 11, cfg.Period)
	assert.Equal(t, "emeaprddgzsccm", cfg.IdentifierFilter)
	assert.Equal(t, "EMEA%", cfg.AccountPattern)
	assert.Equal(t, "usage_report", cfg.ReportName)
	assert.Equal(t, []string{"csv", "json"}, cfg.ReportType)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
dsn: postgres://sccm:secret@db:5432/sccm
identifier_filter: emeaprddgzsccm
report_type:
  - csv
  - pdf
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://sccm:secret@db:5432/sccm", cfg.DSN)
	assert.Equal(t, "emeaprddgzsccm", cfg.IdentifierFilter)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Zero(t, cfg.Year)
	assert.Zero(t, cfg.Period)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
  "dsn": "postgres://sccm:secret@db:5432/sccm",
  "identifier_filter": "emeaprddgzsccm",
  "account_pattern": "EMEA%"
}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://sccm:secret@db:5432/sccm", cfg.DSN)
	assert.Equal(t, "EMEA%", cfg.AccountPattern)
}

func TestLoadConfigFileUnsupportedFormat(t *testing.T) {
	path := writeConfigFile(t, "config.ini", "dsn = x")

	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadConfigFileDirectory(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}
