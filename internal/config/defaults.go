// Package config provides configuration loading and defaults for plantwatch.
package config

// DefaultConfigDir is the default location for plantwatch configuration.
const DefaultConfigDir = "~/.config/plantwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "plantwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultCare holds the product-default care intervals. These are the last
// fallback layer when neither a per-plant override nor a plant-type
// recommendation is set.
var DefaultCare = Care{
	WateringIntervalDays:    7,
	FertilizingIntervalDays: 30,
	DueSoonWindowDays:       1,
}

// DefaultAnalysis holds the default schedule-analysis thresholds. The
// analysis shape is fixed; the constants are deliberately configuration so
// they can be tuned without a release.
var DefaultAnalysis = Analysis{
	MinEvents:         5,
	MaterialityDays:   2,
	MinConfidence:     40,
	MaxGapDays:        90,
	SpreadWeight:      8,
	DataPointBonusCap: 10,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
