// Package app contains the Cobra command tree for plantwatch.
package app

import (
	"fmt"
	"os"

	"github.com/leafbook/plantwatch/internal/config"
	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
	flagDB      string
)

var rootCmd = &cobra.Command{
	Use:   "plantwatch",
	Short: "Care tracking and schedule suggestions for your plants",
	Long: `plantwatch tracks care events for individually named plants, shows which
ones are due or overdue, and watches your actual watering rhythm to suggest
a better schedule than the one you configured.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("plantwatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  plants    Add and list tracked plants")
		fmt.Println("  types     Manage recommended intervals per plant type")
		fmt.Println("  log       Record a care event (watered, fertilized, ...)")
		fmt.Println("  status    Show due and overdue care per plant")
		fmt.Println("  suggest   Analyze watering history and manage suggestions")
		fmt.Println("  prefs     Set or clear per-plant schedule overrides")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		fmt.Sprintf("Config file path (default: %s/%s)", config.DefaultConfigDir, config.DefaultConfigFile))
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		fmt.Sprintf("Database path (default: %s/%s)", config.DefaultConfigDir, config.DefaultDBName))
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

// setup loads the configuration and opens the database. Callers own the
// returned DB and must close it.
func setup() (*config.Config, *store.DB, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// The flag and the config key can each disable color; neither can
	// re-enable it when stdout is not a terminal.
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	return cfg, db, nil
}

// findPlant resolves a plant by name and errors with a helpful message when
// it does not exist.
func findPlant(db *store.DB, name string) (*store.Plant, error) {
	p, err := db.GetPlantByName(name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no plant named %q (see 'plantwatch plants list')", name)
	}
	return p, nil
}
