// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/EmilianoGerez/algorithmic-sub002/internal/engine"
	"github.com/EmilianoGerez/algorithmic-sub002/internal/market"
)

// App captures process-wide runtime settings such as name, metrics address, and logging level.
type App struct {
	Name        string `yaml:"name"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Data points at the two bar feeds the engine replays.
type Data struct {
	StructuralPath string `yaml:"structural_path"`
	StructuralTF   string `yaml:"structural_tf"`
	ExecutionPath  string `yaml:"execution_path"`
	ExecutionTF    string `yaml:"execution_tf"`
}

// Strategy groups the tunable thresholds. Required thresholds are pointers so
// an absent key is distinguishable from an explicit zero: zero disables a
// filter, absence is a configuration error.
type Strategy struct {
	LingerMinutes        *int     `yaml:"linger_minutes"`
	EMAPeriod            *int     `yaml:"ema_period"`
	EMATolerancePct      *float64 `yaml:"ema_tolerance_pct"`
	VolumeMultiple       *float64 `yaml:"volume_multiple"`
	MinGapATR            *float64 `yaml:"min_gap_atr"`
	MinGapPct            *float64 `yaml:"min_gap_pct"`
	MinRelVol            *float64 `yaml:"min_rel_vol"`
	ReclaimRequiresEMA   bool     `yaml:"reclaim_requires_ema"`
	ATRPeriod            int      `yaml:"atr_period"`
	VolumeBaselinePeriod int      `yaml:"volume_baseline_period"`
}

// Output configures signal persistence.
type Output struct {
	SignalsPath string `yaml:"signals_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Data     Data     `yaml:"data"`
	Strategy Strategy `yaml:"strategy"`
	Output   Output   `yaml:"output"`
}

// Load reads a YAML file, rejects unknown keys, applies defaults, and
// validates. Any missing required threshold fails here, before a single bar
// is processed.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.App.Name == "" {
		c.App.Name = "fvgscan"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Strategy.ATRPeriod == 0 {
		c.Strategy.ATRPeriod = 14
	}
	if c.Strategy.VolumeBaselinePeriod == 0 {
		c.Strategy.VolumeBaselinePeriod = 20
	}
	if c.Output.SignalsPath == "" {
		c.Output.SignalsPath = "output/signals.jsonl"
	}
}

// Validate collects every configuration problem into a single error.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.StructuralPath == "" {
		errs = append(errs, "data.structural_path: required")
	}
	if c.Data.ExecutionPath == "" {
		errs = append(errs, "data.execution_path: required")
	}
	if c.Data.StructuralTF == "" {
		errs = append(errs, "data.structural_tf: required")
	}
	if c.Data.ExecutionTF == "" {
		errs = append(errs, "data.execution_tf: required")
	}

	s := c.Strategy
	switch {
	case s.LingerMinutes == nil:
		errs = append(errs, "strategy.linger_minutes: required")
	case *s.LingerMinutes < 0:
		errs = append(errs, "strategy.linger_minutes: must be non-negative")
	}
	switch {
	case s.EMAPeriod == nil:
		errs = append(errs, "strategy.ema_period: required")
	case *s.EMAPeriod <= 0:
		errs = append(errs, "strategy.ema_period: must be positive")
	}
	for _, th := range []struct {
		name  string
		value *float64
	}{
		{"strategy.ema_tolerance_pct", s.EMATolerancePct},
		{"strategy.volume_multiple", s.VolumeMultiple},
		{"strategy.min_gap_atr", s.MinGapATR},
		{"strategy.min_gap_pct", s.MinGapPct},
		{"strategy.min_rel_vol", s.MinRelVol},
	} {
		switch {
		case th.value == nil:
			errs = append(errs, th.name+": required")
		case *th.value < 0:
			errs = append(errs, th.name+": must be non-negative")
		}
	}
	if s.ATRPeriod <= 0 {
		errs = append(errs, "strategy.atr_period: must be positive")
	}
	if s.VolumeBaselinePeriod <= 0 {
		errs = append(errs, "strategy.volume_baseline_period: must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("app.log_level: invalid level %q", c.App.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// EngineParams maps the validated configuration onto the engine's resolved
// parameter set. Only call after Load/Validate succeeded.
func (c *Config) EngineParams() engine.Params {
	s := c.Strategy
	return engine.Params{
		Linger:               time.Duration(*s.LingerMinutes) * time.Minute,
		EMAPeriod:            *s.EMAPeriod,
		EMATolerancePct:      *s.EMATolerancePct,
		VolumeMultiple:       *s.VolumeMultiple,
		MinGapATR:            *s.MinGapATR,
		MinGapPct:            *s.MinGapPct,
		MinRelVol:            *s.MinRelVol,
		ReclaimRequiresEMA:   s.ReclaimRequiresEMA,
		ATRPeriod:            s.ATRPeriod,
		VolumeBaselinePeriod: s.VolumeBaselinePeriod,
		StructuralTF:         market.Timeframe(c.Data.StructuralTF),
		ExecutionTF:          market.Timeframe(c.Data.ExecutionTF),
	}
}
