package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/leafbook/plantwatch/internal/config"
	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/schedule"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Analyze watering history and manage schedule suggestions",
	Long: `Compare each plant's actual watering rhythm against its configured
interval. When the detected rhythm differs enough and the pattern is
consistent, a suggestion is recorded — at most one pending suggestion per
plant. Accept a suggestion to make it the plant's watering override, or
dismiss it.`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

var suggestAcceptCmd = &cobra.Command{
	Use:   "accept <suggestion-id>",
	Short: "Accept a suggestion and adopt its interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestAccept,
}

var suggestDismissCmd = &cobra.Command{
	Use:   "dismiss <suggestion-id>",
	Short: "Dismiss a suggestion without changing the schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestDismiss,
}

func init() {
	suggestCmd.AddCommand(suggestAcceptCmd)
	suggestCmd.AddCommand(suggestDismissCmd)
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := detectSuggestions(db, cfg, time.Now()); err != nil {
		return err
	}

	active, err := db.ListActiveSuggestions()
	if err != nil {
		return fmt.Errorf("listing suggestions: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(active)
	}

	if len(active) == 0 {
		fmt.Println("No schedule suggestions. Your schedules match your habits.")
		return nil
	}

	fmt.Println(output.StyleHeader.Render("Schedule suggestions"))
	fmt.Println()
	for _, s := range active {
		direction := "less often"
		if s.SuggestedIntervalDays < s.CurrentIntervalDays {
			direction = "more often"
		}
		fmt.Printf("  %s — you water %s than your %d-day schedule\n",
			output.StyleBold.Render(s.PlantName), direction, s.CurrentIntervalDays)
		fmt.Printf("    suggested: every %d days (currently %d)\n",
			s.SuggestedIntervalDays, s.CurrentIntervalDays)
		fmt.Printf("    confidence: %s\n", output.ConfidenceBar(s.ConfidenceScore, 20))
		fmt.Printf("    %s\n", output.StyleMuted.Render("accept: plantwatch suggest accept "+s.ID))
		fmt.Println()
	}
	return nil
}

// detectSuggestions runs the interval analysis for every plant and records
// a suggestion where one is warranted and none is pending. The engine's
// MaybeCreate guard and the store's active-suggestion uniqueness together
// make this safe to run repeatedly or concurrently.
func detectSuggestions(db *store.DB, cfg *config.Config, now time.Time) error {
	plants, err := db.ListPlants()
	if err != nil {
		return fmt.Errorf("listing plants: %w", err)
	}

	tuning := cfg.Analysis.Tuning()
	for _, plant := range plants {
		watering, _, err := effectiveIntervals(db, cfg, plant)
		if err != nil {
			return fmt.Errorf("plant %s: %w", plant.Name, err)
		}

		dates, err := db.ListEventDates(plant.ID, store.EventWatered)
		if err != nil {
			return fmt.Errorf("plant %s: %w", plant.Name, err)
		}

		analysis := schedule.AnalyzeIntervals(dates, watering.Days, tuning)

		active, err := db.GetActiveSuggestion(plant.ID)
		if err != nil {
			return fmt.Errorf("plant %s: %w", plant.Name, err)
		}

		s := schedule.MaybeCreate(uuid.NewString(), plant.ID, analysis, watering.Days, active != nil, now)
		if s == nil {
			continue
		}
		if _, err := db.InsertSuggestion(s); err != nil {
			return fmt.Errorf("recording suggestion for %s: %w", plant.Name, err)
		}
	}
	return nil
}

func runSuggestAccept(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSuggestion(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("no suggestion with id %s", args[0])
	}

	accepted, overrideDays, err := s.Accept(time.Now())
	if err != nil {
		return describeResolutionError(err)
	}
	if err := db.SaveResolution(accepted); err != nil {
		return describeResolutionError(err)
	}

	// Promote the accepted interval into the plant's watering override.
	if err := db.SetWateringOverride(accepted.PlantID, &overrideDays); err != nil {
		return fmt.Errorf("saving override: %w", err)
	}

	plant, err := db.GetPlant(accepted.PlantID)
	if err != nil {
		return err
	}
	fmt.Printf("Accepted. %s now waters every %d days.\n",
		output.StyleBold.Render(plant.Name), overrideDays)
	return nil
}

func runSuggestDismiss(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.GetSuggestion(args[0])
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("no suggestion with id %s", args[0])
	}

	dismissed, err := s.Dismiss(time.Now())
	if err != nil {
		return describeResolutionError(err)
	}
	if err := db.SaveResolution(dismissed); err != nil {
		return describeResolutionError(err)
	}

	fmt.Println("Dismissed. The current schedule stays in place.")
	return nil
}

// describeResolutionError rewords the two already-resolved failure modes
// (stale value, lost optimistic update) for the terminal.
func describeResolutionError(err error) error {
	var invalid *schedule.InvalidStateError
	if errors.As(err, &invalid) {
		return fmt.Errorf("this suggestion was already %s", invalid.State)
	}
	if errors.Is(err, store.ErrSuggestionResolved) {
		return fmt.Errorf("this suggestion was resolved by another command just now")
	}
	return err
}
