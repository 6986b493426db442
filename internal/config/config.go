package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/leafbook/plantwatch/internal/schedule"
	"github.com/spf13/viper"
)

// Config is the top-level plantwatch configuration.
type Config struct {
	Care     Care     `mapstructure:"care"`
	Analysis Analysis `mapstructure:"analysis"`
	Output   Output   `mapstructure:"output"`
}

// Care defines the product-default care intervals and the due-soon window.
type Care struct {
	WateringIntervalDays    int `mapstructure:"watering_interval_days"`
	FertilizingIntervalDays int `mapstructure:"fertilizing_interval_days"`
	DueSoonWindowDays       int `mapstructure:"due_soon_window_days"`
}

// Analysis defines the schedule-analysis thresholds.
type Analysis struct {
	MinEvents         int     `mapstructure:"min_events"`
	MaterialityDays   int     `mapstructure:"materiality_days"`
	MinConfidence     float64 `mapstructure:"min_confidence"`
	MaxGapDays        int     `mapstructure:"max_gap_days"`
	SpreadWeight      float64 `mapstructure:"spread_weight"`
	DataPointBonusCap int     `mapstructure:"data_point_bonus_cap"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Tuning converts the analysis section into the engine's tuning options.
func (a Analysis) Tuning() schedule.Tuning {
	return schedule.Tuning{
		MinEvents:         a.MinEvents,
		MaterialityDays:   a.MaterialityDays,
		MinConfidence:     a.MinConfidence,
		MaxGapDays:        a.MaxGapDays,
		SpreadWeight:      a.SpreadWeight,
		DataPointBonusCap: a.DataPointBonusCap,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("care.watering_interval_days", DefaultCare.WateringIntervalDays)
	v.SetDefault("care.fertilizing_interval_days", DefaultCare.FertilizingIntervalDays)
	v.SetDefault("care.due_soon_window_days", DefaultCare.DueSoonWindowDays)
	v.SetDefault("analysis.min_events", DefaultAnalysis.MinEvents)
	v.SetDefault("analysis.materiality_days", DefaultAnalysis.MaterialityDays)
	v.SetDefault("analysis.min_confidence", DefaultAnalysis.MinConfidence)
	v.SetDefault("analysis.max_gap_days", DefaultAnalysis.MaxGapDays)
	v.SetDefault("analysis.spread_weight", DefaultAnalysis.SpreadWeight)
	v.SetDefault("analysis.data_point_bonus_cap", DefaultAnalysis.DataPointBonusCap)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
