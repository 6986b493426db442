package app

import (
	"fmt"

	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/schedule"
	"github.com/spf13/cobra"
)

var (
	prefsSetWatering      int
	prefsSetFertilizing   int
	prefsClearWatering    bool
	prefsClearFertilizing bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Set or clear per-plant schedule overrides",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <plant>",
	Short: "Override a plant's watering/fertilizing interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsSet,
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear <plant>",
	Short: "Clear overrides and fall back to type/default intervals",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsClear,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show <plant>",
	Short: "Show a plant's effective intervals and where they come from",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsShow,
}

func init() {
	prefsSetCmd.Flags().IntVar(&prefsSetWatering, "watering", 0, "Days between waterings")
	prefsSetCmd.Flags().IntVar(&prefsSetFertilizing, "fertilizing", 0, "Days between fertilizings")
	prefsClearCmd.Flags().BoolVar(&prefsClearWatering, "watering", false, "Clear the watering override")
	prefsClearCmd.Flags().BoolVar(&prefsClearFertilizing, "fertilizing", false, "Clear the fertilizing override")
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsClearCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	if prefsSetWatering <= 0 && prefsSetFertilizing <= 0 {
		return fmt.Errorf("nothing to set: pass --watering and/or --fertilizing with a positive day count")
	}

	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plant, err := findPlant(db, args[0])
	if err != nil {
		return err
	}

	if prefsSetWatering > 0 {
		if err := db.SetWateringOverride(plant.ID, &prefsSetWatering); err != nil {
			return fmt.Errorf("saving watering override: %w", err)
		}
		fmt.Printf("%s: watering every %d days\n", output.StyleBold.Render(plant.Name), prefsSetWatering)
	}
	if prefsSetFertilizing > 0 {
		if err := db.SetFertilizingOverride(plant.ID, &prefsSetFertilizing); err != nil {
			return fmt.Errorf("saving fertilizing override: %w", err)
		}
		fmt.Printf("%s: fertilizing every %d days\n", output.StyleBold.Render(plant.Name), prefsSetFertilizing)
	}
	return nil
}

func runPrefsClear(cmd *cobra.Command, args []string) error {
	if !prefsClearWatering && !prefsClearFertilizing {
		return fmt.Errorf("nothing to clear: pass --watering and/or --fertilizing")
	}

	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plant, err := findPlant(db, args[0])
	if err != nil {
		return err
	}

	if prefsClearWatering {
		if err := db.SetWateringOverride(plant.ID, nil); err != nil {
			return fmt.Errorf("clearing watering override: %w", err)
		}
	}
	if prefsClearFertilizing {
		if err := db.SetFertilizingOverride(plant.ID, nil); err != nil {
			return fmt.Errorf("clearing fertilizing override: %w", err)
		}
	}

	fmt.Printf("Cleared. %s falls back to its type recommendation or the default.\n",
		output.StyleBold.Render(plant.Name))
	return nil
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plant, err := findPlant(db, args[0])
	if err != nil {
		return err
	}

	watering, fertilizing, err := effectiveIntervals(db, cfg, *plant)
	if err != nil {
		return err
	}

	fmt.Println(output.StyleHeader.Render(plant.Name))
	fmt.Printf("  watering:    every %d days %s\n", watering.Days, sourceNote(watering.Source))
	fmt.Printf("  fertilizing: every %d days %s\n", fertilizing.Days, sourceNote(fertilizing.Source))
	return nil
}

func sourceNote(src schedule.IntervalSource) string {
	switch src {
	case schedule.SourceOverride:
		return output.StyleMuted.Render("(your override)")
	case schedule.SourceRecommended:
		return output.StyleMuted.Render("(type recommendation)")
	default:
		return output.StyleMuted.Render("(default)")
	}
}
