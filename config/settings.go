// Package config provides the runtime configuration of the insights service.
// Values come from built-in defaults, an optional YAML file and INSIGHTS_*
// environment variables, applied in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/diet-insights/internal/dataset"
	"github.com/gcbaptista/diet-insights/internal/logger"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "INSIGHTS_"

// Settings is the top-level configuration.
type Settings struct {
	Server  ServerSettings  `yaml:"server"`
	Dataset DatasetSettings `yaml:"dataset"`
	Charts  ChartSettings   `yaml:"charts"`
	Logging LoggingSettings `yaml:"logging"`
	Metrics MetricsSettings `yaml:"metrics"`
}

// ServerSettings holds HTTP server settings.
type ServerSettings struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DatasetSettings locates the recipe file and names its required columns.
type DatasetSettings struct {
	Path    string         `yaml:"path"`
	Columns dataset.Schema `yaml:"columns"`
}

// ChartSettings controls rasterization.
type ChartSettings struct {
	DPI float64 `yaml:"dpi"`
}

// LoggingSettings controls structured logging level and output format.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsSettings controls the Prometheus metrics server.
type MetricsSettings struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		Server: ServerSettings{
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Dataset: DatasetSettings{
			Path:    "All_Diets.csv",
			Columns: dataset.DefaultSchema(),
		},
		Charts: ChartSettings{
			DPI: 100,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsSettings{
			Enabled: true,
			Port:    9090,
		},
	}
}

// Load reads a YAML file (if path is not empty) over the defaults, then
// applies environment overrides and fills anything left unset.
func Load(path string) (*Settings, error) {
	settings := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := settings.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	return settings, nil
}

// applyEnvOverrides reads INSIGHTS_* variables through lookup. Malformed
// numbers are reported rather than silently ignored.
func (s *Settings) applyEnvOverrides(lookup func(string) (string, bool)) error {
	var problems []string
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				problems = append(problems, EnvPrefix+name+" must be an integer, got '"+v+"'")
				return
			}
			*dst = n
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				problems = append(problems, EnvPrefix+name+" must be a duration, got '"+v+"'")
				return
			}
			*dst = d
		}
	}

	integer("SERVER_PORT", &s.Server.Port)
	duration("SERVER_READ_TIMEOUT", &s.Server.ReadTimeout)
	duration("SERVER_WRITE_TIMEOUT", &s.Server.WriteTimeout)
	duration("SERVER_SHUTDOWN_TIMEOUT", &s.Server.ShutdownTimeout)
	str("DATASET_PATH", &s.Dataset.Path)
	str("DATASET_DIET_TYPE_COLUMN", &s.Dataset.Columns.DietType)
	str("DATASET_PROTEIN_COLUMN", &s.Dataset.Columns.Protein)
	str("DATASET_CARBS_COLUMN", &s.Dataset.Columns.Carbs)
	str("DATASET_FAT_COLUMN", &s.Dataset.Columns.Fat)
	str("LOGGING_LEVEL", &s.Logging.Level)
	str("LOGGING_FORMAT", &s.Logging.Format)
	integer("METRICS_PORT", &s.Metrics.Port)

	if v, ok := lookup(EnvPrefix + "CHARTS_DPI"); ok && v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			problems = append(problems, EnvPrefix+"CHARTS_DPI must be a number, got '"+v+"'")
		} else {
			s.Charts.DPI = dpi
		}
	}
	if v, ok := lookup(EnvPrefix + "METRICS_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, EnvPrefix+"METRICS_ENABLED must be a boolean, got '"+v+"'")
		} else {
			s.Metrics.Enabled = enabled
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid environment overrides: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ApplyDefaults fills zero values left by a partial config file
func (s *Settings) ApplyDefaults() {
	def := Default()

	if s.Server.Port == 0 {
		s.Server.Port = def.Server.Port
	}
	if s.Server.ReadTimeout == 0 {
		s.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if s.Server.WriteTimeout == 0 {
		s.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if s.Server.ShutdownTimeout == 0 {
		s.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}

	if strings.TrimSpace(s.Dataset.Path) == "" {
		s.Dataset.Path = def.Dataset.Path
	}
	if s.Dataset.Columns.DietType == "" {
		s.Dataset.Columns.DietType = def.Dataset.Columns.DietType
	}
	if s.Dataset.Columns.Protein == "" {
		s.Dataset.Columns.Protein = def.Dataset.Columns.Protein
	}
	if s.Dataset.Columns.Carbs == "" {
		s.Dataset.Columns.Carbs = def.Dataset.Columns.Carbs
	}
	if s.Dataset.Columns.Fat == "" {
		s.Dataset.Columns.Fat = def.Dataset.Columns.Fat
	}

	if s.Charts.DPI == 0 {
		s.Charts.DPI = def.Charts.DPI
	}
	if s.Logging.Level == "" {
		s.Logging.Level = def.Logging.Level
	}
	if s.Logging.Format == "" {
		s.Logging.Format = def.Logging.Format
	}
	if s.Metrics.Port == 0 {
		s.Metrics.Port = def.Metrics.Port
	}
}

// Validate returns a human-readable description of every problem found.
// An empty result means the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	problems = append(problems, checkPort("server.port", s.Server.Port)...)
	if s.Server.ReadTimeout < 0 || s.Server.WriteTimeout < 0 || s.Server.ShutdownTimeout < 0 {
		problems = append(problems, "Server timeouts cannot be negative")
	}

	if strings.TrimSpace(s.Dataset.Path) == "" {
		problems = append(problems, "dataset.path is required")
	}
	problems = append(problems, checkColumns(s.Dataset.Columns)...)

	if s.Charts.DPI < 10 || s.Charts.DPI > 600 {
		problems = append(problems, fmt.Sprintf("charts.dpi must be between 10 and 600, got %g", s.Charts.DPI))
	}

	if !logger.ValidLevel(s.Logging.Level) {
		problems = append(problems, "Invalid logging.level '"+s.Logging.Level+"' (must be debug, info, warn or error)")
	}
	if f := strings.ToLower(s.Logging.Format); f != "text" && f != "json" {
		problems = append(problems, "Invalid logging.format '"+s.Logging.Format+"' (must be 'text' or 'json')")
	}

	if s.Metrics.Enabled {
		problems = append(problems, checkPort("metrics.port", s.Metrics.Port)...)
		if s.Metrics.Port == s.Server.Port {
			problems = append(problems, "metrics.port must differ from server.port")
		}
	}

	return problems
}

func checkPort(field string, port int) []string {
	if port < 1 || port > 65535 {
		return []string{fmt.Sprintf("%s must be between 1 and 65535, got %d", field, port)}
	}
	return nil
}

// checkColumns rejects blank or repeated column names
func checkColumns(schema dataset.Schema) []string {
	var problems []string
	seen := make(map[string]string)
	named := []struct{ field, column string }{
		{"diet_type", schema.DietType},
		{"protein", schema.Protein},
		{"carbs", schema.Carbs},
		{"fat", schema.Fat},
	}
	for _, n := range named {
		if strings.TrimSpace(n.column) == "" {
			problems = append(problems, "dataset.columns."+n.field+" cannot be empty or whitespace-only")
			continue
		}
		if other, ok := seen[n.column]; ok {
			problems = append(problems, "Column '"+n.column+"' is used for both "+other+" and "+n.field)
		}
		seen[n.column] = n.field
	}
	return problems
}
