package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "insights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, settings.Server.Port)
	assert.Equal(t, "All_Diets.csv", settings.Dataset.Path)
	assert.Equal(t, "Diet Type", settings.Dataset.Columns.DietType)
	assert.Equal(t, 100.0, settings.Charts.DPI)
	assert.True(t, settings.Metrics.Enabled)
	assert.Empty(t, settings.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  shutdownTimeout: 5s
dataset:
  path: /data/diets.csv
  columns:
    diet_type: Diet_type
    protein: Protein(g)
charts:
  dpi: 150
logging:
  level: debug
  format: json
metrics:
  enabled: false
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, settings.Server.Port)
	assert.Equal(t, 5*time.Second, settings.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, settings.Server.ReadTimeout, "unset values keep their default")
	assert.Equal(t, "/data/diets.csv", settings.Dataset.Path)
	assert.Equal(t, "Diet_type", settings.Dataset.Columns.DietType)
	assert.Equal(t, "Protein(g)", settings.Dataset.Columns.Protein)
	assert.Equal(t, "Carbs", settings.Dataset.Columns.Carbs)
	assert.Equal(t, 150.0, settings.Charts.DPI)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.False(t, settings.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("INSIGHTS_SERVER_PORT", "7000")
	t.Setenv("INSIGHTS_DATASET_PATH", "/tmp/other.csv")
	t.Setenv("INSIGHTS_CHARTS_DPI", "72")
	t.Setenv("INSIGHTS_METRICS_ENABLED", "false")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, settings.Server.Port)
	assert.Equal(t, "/tmp/other.csv", settings.Dataset.Path)
	assert.Equal(t, 72.0, settings.Charts.DPI)
	assert.False(t, settings.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map]"))
	assert.Error(t, err)

	t.Setenv("INSIGHTS_SERVER_PORT", "eighty")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INSIGHTS_SERVER_PORT")
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	settings := &Settings{}
	settings.ApplyDefaults()

	assert.Equal(t, Default().Server, settings.Server)
	assert.Equal(t, Default().Dataset, settings.Dataset)
	assert.Equal(t, Default().Logging, settings.Logging)
	assert.False(t, settings.Metrics.Enabled, "a zero struct keeps metrics disabled")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		modify         func(s *Settings)
		expectedErrors int
	}{
		{"defaults are valid", func(s *Settings) {}, 0},
		{"port out of range", func(s *Settings) { s.Server.Port = 70000 }, 1},
		{"empty dataset path", func(s *Settings) { s.Dataset.Path = "  " }, 1},
		{"blank column", func(s *Settings) { s.Dataset.Columns.Fat = " " }, 1},
		{"column reused", func(s *Settings) { s.Dataset.Columns.Carbs = "Protein" }, 1},
		{"dpi too low", func(s *Settings) { s.Charts.DPI = 1 }, 1},
		{"unknown log level", func(s *Settings) { s.Logging.Level = "verbose" }, 1},
		{"unknown log format", func(s *Settings) { s.Logging.Format = "xml" }, 1},
		{"metrics port clash", func(s *Settings) { s.Metrics.Port = s.Server.Port }, 1},
		{"metrics port ignored when disabled", func(s *Settings) {
			s.Metrics.Enabled = false
			s.Metrics.Port = 0
		}, 0},
		{"negative timeout", func(s *Settings) { s.Server.ShutdownTimeout = -time.Second }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := Default()
			tt.modify(settings)

			problems := settings.Validate()
			assert.Len(t, problems, tt.expectedErrors, "problems: %v", problems)
		})
	}
}
