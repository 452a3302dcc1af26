package config

import (
	"fmt"
	"os"
	"strconv"

	"DragonLens/internal/model"
	"DragonLens/internal/timeutil"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Provider string `yaml:"provider"`
	Tiers    struct {
		Big    float64 `yaml:"big"`
		Middle float64 `yaml:"middle"`
		Small  float64 `yaml:"small"`
	} `yaml:"tiers"`
	Report struct {
		Start    string   `yaml:"start"`
		End      string   `yaml:"end"`
		CapDate  string   `yaml:"cap_date"`
		TopCount int      `yaml:"top_count"`
		Horizons []int    `yaml:"horizons"`
		Players  []string `yaml:"players"`
	} `yaml:"report"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("REPORT_START"); v != "" {
		cfg.Report.Start = v
	}
	if v := os.Getenv("REPORT_END"); v != "" {
		cfg.Report.End = v
	}
	if v := os.Getenv("CAP_DATE"); v != "" {
		cfg.Report.CapDate = v
	}
	if v := os.Getenv("TOP_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Report.TopCount = n
		}
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/dragonlens.db"
	}
	if cfg.Provider == "" {
		cfg.Provider = "em"
	}
	if cfg.Tiers.Big == 0 {
		cfg.Tiers.Big = model.DefaultCapTiers.Big
	}
	if cfg.Tiers.Middle == 0 {
		cfg.Tiers.Middle = model.DefaultCapTiers.Middle
	}
	if cfg.Tiers.Small == 0 {
		cfg.Tiers.Small = model.DefaultCapTiers.Small
	}
	if cfg.Report.Start == "" {
		cfg.Report.Start = "2022-01-01"
	}
	if cfg.Report.TopCount == 0 {
		cfg.Report.TopCount = 40
	}
	if len(cfg.Report.Horizons) == 0 {
		cfg.Report.Horizons = []int{5, 10, 20, 60, 90}
	}
	if len(cfg.Report.Players) == 0 {
		cfg.Report.Players = []string{"机构专用", "东方财富证券股份有限公司拉萨团结路第二证券营业部"}
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if !(c.Tiers.Big > c.Tiers.Middle && c.Tiers.Middle > c.Tiers.Small && c.Tiers.Small > 0) {
		return fmt.Errorf("tiers must satisfy big > middle > small > 0")
	}
	if c.Report.TopCount <= 0 {
		return fmt.Errorf("report.top_count must be positive")
	}
	for _, h := range c.Report.Horizons {
		if h <= 0 {
			return fmt.Errorf("report.horizons must be positive, got %d", h)
		}
	}
	if _, err := timeutil.ToDate(c.Report.Start); err != nil {
		return fmt.Errorf("report.start: %w", err)
	}
	if c.Report.End != "" {
		if _, err := timeutil.ToDate(c.Report.End); err != nil {
			return fmt.Errorf("report.end: %w", err)
		}
	}
	if c.Report.CapDate != "" {
		if _, err := timeutil.ToDate(c.Report.CapDate); err != nil {
			return fmt.Errorf("report.cap_date: %w", err)
		}
	}
	return nil
}

// CapTiers returns the configured tier boundaries.
func (c *Config) CapTiers() model.CapTiers {
	return model.CapTiers{Big: c.Tiers.Big, Middle: c.Tiers.Middle, Small: c.Tiers.Small}
}
