package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/walletstats/stats"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WALLETSTATS_"

// Config represents the complete analysis configuration
type Config struct {
	Input    InputConfig    `json:"input" yaml:"input"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// InputConfig locates the wallet history export
type InputConfig struct {
	Path        string `json:"path" yaml:"path"`
	StrictOrder bool   `json:"strict_order" yaml:"strict_order"`
}

// AnalysisConfig contains aggregator parameters
type AnalysisConfig struct {
	WarmupOffset int `json:"warmup_offset" yaml:"warmup_offset"`
	MixTop       int `json:"mix_top" yaml:"mix_top"`
}

// OutputConfig controls rendered artifacts
type OutputConfig struct {
	Dir       string       `json:"dir" yaml:"dir"`
	Dashboard string       `json:"dashboard" yaml:"dashboard"`
	Charts    ChartsConfig `json:"charts" yaml:"charts"`
}

// ChartsConfig sizes the PNG charts, in inches at DPI.
type ChartsConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	DPI    int     `json:"dpi" yaml:"dpi"`
}

// ExportConfig contains exporter parameters
type ExportConfig struct {
	Type string `json:"type" yaml:"type"` // "json", "csv", "sqlite" or "xlsx"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

var exportTypes = map[string]string{
	"json":   "report.json",
	"csv":    "csv",
	"sqlite": "wallet.sqlite",
	"xlsx":   "wallet_report.xlsx",
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}
	if c.Analysis.WarmupOffset < 0 {
		return fmt.Errorf("analysis.warmup_offset must not be negative")
	}
	if c.Analysis.MixTop < 0 {
		return fmt.Errorf("analysis.mix_top must not be negative")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.Dashboard == "" {
		return fmt.Errorf("output.dashboard is required")
	}
	if c.Output.Charts.Width <= 0 || c.Output.Charts.Height <= 0 {
		return fmt.Errorf("output.charts width and height must be positive")
	}
	if c.Output.Charts.DPI <= 0 {
		return fmt.Errorf("output.charts.dpi must be positive")
	}
	if _, ok := exportTypes[c.Export.Type]; !ok {
		return fmt.Errorf("export.type must be one of json, csv, sqlite, xlsx")
	}
	return nil
}

// ExportPath is Export.Path, or the default file name for the export
// type inside Output.Dir.
func (c *Config) ExportPath() string {
	if c.Export.Path != "" {
		return c.Export.Path
	}
	return filepath.Join(c.Output.Dir, exportTypes[c.Export.Type])
}

// DashboardPath is the dashboard file inside Output.Dir unless it is
// absolute.
func (c *Config) DashboardPath() string {
	if filepath.IsAbs(c.Output.Dashboard) {
		return c.Output.Dashboard
	}
	return filepath.Join(c.Output.Dir, c.Output.Dashboard)
}

// LoadDotEnv loads .env style files into the process environment.
// Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from WALLETSTATS_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("INPUT", &c.Input.Path)
	str("OUTPUT_DIR", &c.Output.Dir)
	str("DASHBOARD", &c.Output.Dashboard)
	str("EXPORT_TYPE", &c.Export.Type)
	str("EXPORT_PATH", &c.Export.Path)
	str("LOG_LEVEL", &c.Log.Level)

	if v, ok := lookup(EnvPrefix + "WARMUP_OFFSET"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWARMUP_OFFSET: %w", EnvPrefix, err)
		}
		c.Analysis.WarmupOffset = n
	}
	if v, ok := lookup(EnvPrefix + "STRICT_ORDER"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSTRICT_ORDER: %w", EnvPrefix, err)
		}
		c.Input.StrictOrder = b
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "wallet.csv",
		},
		Analysis: AnalysisConfig{
			WarmupOffset: stats.DefaultWarmupOffset,
			MixTop:       stats.DefaultMixTop,
		},
		Output: OutputConfig{
			Dir:       "report",
			Dashboard: "wallet_dashboard.html",
			Charts: ChartsConfig{
				Width:  14,
				Height: 7,
				DPI:    150,
			},
		},
		Export: ExportConfig{
			Type: "json",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
