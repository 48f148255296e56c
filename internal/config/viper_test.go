package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SPENDLENS_LOG_LEVEL", "SPENDLENS_LOG_FORMAT", "SPENDLENS_CSV_DELIMITER",
		"SPENDLENS_DATA_DIRECTORY", "SPENDLENS_DATABASE_PATH", "SPENDLENS_BATCH_CONCURRENCY",
		"SPENDLENS_FILES_OVERRIDES", "SPENDLENS_REPORT_FORMAT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.True(t, config.CSV.IncludeHeaders)
	assert.Equal(t, "", config.Data.Directory)
	assert.Equal(t, "categories.yaml", config.Files.Categories)
	assert.Equal(t, "overrides.yaml", config.Files.Overrides)
	assert.Equal(t, "budgets.yaml", config.Files.Budgets)
	assert.Equal(t, 4, config.Batch.Concurrency)
	assert.Equal(t, "text", config.Report.Format)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"SPENDLENS_LOG_LEVEL":         "debug",
		"SPENDLENS_LOG_FORMAT":        "json",
		"SPENDLENS_CSV_DELIMITER":     ";",
		"SPENDLENS_DATA_DIRECTORY":    "/tmp/spendlens-data",
		"SPENDLENS_BATCH_CONCURRENCY": "8",
		"SPENDLENS_FILES_OVERRIDES":   "corrections.yaml",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, ';', config.DelimiterRune())
	assert.Equal(t, "/tmp/spendlens-data", config.DataDirectory())
	assert.Equal(t, filepath.Join("/tmp/spendlens-data", "spendlens.db"), config.DatabasePath())
	assert.Equal(t, 8, config.Batch.Concurrency)
	assert.Equal(t, "corrections.yaml", config.Files.Overrides)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	content := `log:
  level: warn
  format: json
csv:
  delimiter: "|"
database:
  path: /var/lib/spendlens/ledger.db
report:
  format: yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	config, err := InitializeConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "/var/lib/spendlens/ledger.db", config.DatabasePath())
	assert.Equal(t, "yaml", config.Report.Format)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())
	file := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("batch:\n  concurrency: 2\n"), 0600))

	config, err := InitializeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Batch.Concurrency)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"long delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"zero concurrency", func(c *Config) { c.Batch.Concurrency = 0 }, "batch.concurrency"},
		{"bad report format", func(c *Config) { c.Report.Format = "pdf" }, "invalid report format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Log.Level = "info"
			c.Log.Format = "text"
			c.CSV.Delimiter = ","
			c.Batch.Concurrency = 4
			c.Report.Format = "text"
			tt.modify(c)

			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDataDirectoryDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c := &Config{}
	assert.Equal(t, filepath.Join(home, ".spendlens"), c.DataDirectory())
	assert.Equal(t, filepath.Join(home, ".spendlens", "spendlens.db"), c.DatabasePath())
	assert.Equal(t, ',', c.DelimiterRune())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SPENDLENS_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("SPENDLENS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SPENDLENS_TEST_UNSET_VALUE", "fallback"))
}
