package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/leafbook/plantwatch/internal/config"
	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/schedule"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show due and overdue care per plant",
	Long: `Derive each plant's watering and fertilizing status from its effective
interval and most recent events. Status is recomputed on every call; nothing
is persisted.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plants, err := db.ListPlants()
	if err != nil {
		return fmt.Errorf("listing plants: %w", err)
	}
	if len(plants) == 0 {
		fmt.Println("No plants yet. Add one with 'plantwatch plants add <name>'.")
		return nil
	}

	tasks, err := buildDueTasks(db, cfg, plants, time.Now())
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	renderDueTasks(tasks)
	return nil
}

// buildDueTasks computes a DueTask per plant. Plants are independent, so
// the per-plant store reads fan out concurrently (safe under WAL).
func buildDueTasks(db *store.DB, cfg *config.Config, plants []store.Plant, now time.Time) ([]schedule.DueTask, error) {
	tasks := make([]schedule.DueTask, len(plants))

	var g errgroup.Group
	for i, plant := range plants {
		i, plant := i, plant
		g.Go(func() error {
			task, err := buildDueTask(db, cfg, plant, now)
			if err != nil {
				return fmt.Errorf("plant %s: %w", plant.Name, err)
			}
			tasks[i] = *task
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func buildDueTask(db *store.DB, cfg *config.Config, plant store.Plant, now time.Time) (*schedule.DueTask, error) {
	watering, fertilizing, err := effectiveIntervals(db, cfg, plant)
	if err != nil {
		return nil, err
	}

	lastWatered, err := db.LatestEventDate(plant.ID, store.EventWatered)
	if err != nil {
		return nil, err
	}
	lastFertilized, err := db.LatestEventDate(plant.ID, store.EventFertilized)
	if err != nil {
		return nil, err
	}

	soon := cfg.Care.DueSoonWindowDays
	waterDue := schedule.Status(watering.Days, lastWatered, now, soon)
	fertilizeDue := schedule.Status(fertilizing.Days, lastFertilized, now, soon)

	return &schedule.DueTask{
		PlantID:                  plant.ID,
		PlantName:                plant.Name,
		PlantTypeName:            plant.TypeName,
		WateringStatus:           waterDue.Status,
		WateringFrequencyDays:    watering.Days,
		LastWateredAt:            lastWatered,
		WaterDueAt:               waterDue.DueAt,
		FertilizingStatus:        fertilizeDue.Status,
		FertilizingFrequencyDays: fertilizing.Days,
		LastFertilizedAt:         lastFertilized,
		FertilizeDueAt:           fertilizeDue.DueAt,
	}, nil
}

// effectiveIntervals resolves both care intervals for a plant through the
// override -> type recommendation -> product default layers.
func effectiveIntervals(db *store.DB, cfg *config.Config, plant store.Plant) (watering, fertilizing schedule.EffectiveInterval, err error) {
	pref, err := db.GetPreference(plant.ID)
	if err != nil {
		return watering, fertilizing, err
	}

	var plantType *store.PlantType
	if plant.TypeName != "" {
		plantType, err = db.GetPlantType(plant.TypeName)
		if err != nil {
			return watering, fertilizing, err
		}
	}

	var wateringOverride, fertilizingOverride *int
	if pref != nil {
		wateringOverride = pref.WateringFrequencyDays
		fertilizingOverride = pref.FertilizingFrequencyDays
	}
	var wateringRec, fertilizingRec *int
	if plantType != nil {
		wateringRec = plantType.WateringFrequencyDays
		fertilizingRec = plantType.FertilizingFrequencyDays
	}

	watering = schedule.ResolveInterval(wateringOverride, wateringRec, cfg.Care.WateringIntervalDays)
	fertilizing = schedule.ResolveInterval(fertilizingOverride, fertilizingRec, cfg.Care.FertilizingIntervalDays)
	return watering, fertilizing, nil
}

func renderDueTasks(tasks []schedule.DueTask) {
	tbl := output.NewTable("PLANT", "WATERING", "WATER DUE", "FERTILIZING", "FERTILIZE DUE")
	needsCare := 0
	for _, t := range tasks {
		if t.WateringStatus == schedule.StatusOverdue || t.WateringStatus == schedule.StatusDueSoon ||
			t.FertilizingStatus == schedule.StatusOverdue || t.FertilizingStatus == schedule.StatusDueSoon {
			needsCare++
		}
		tbl.AddRow(
			t.PlantName,
			statusCell(t.WateringStatus),
			formatDueDate(t.WaterDueAt),
			statusCell(t.FertilizingStatus),
			formatDueDate(t.FertilizeDueAt),
		)
	}
	tbl.Print()

	fmt.Println()
	if needsCare == 0 {
		fmt.Println(output.StyleSuccess.Render("Everything is on schedule."))
	} else {
		fmt.Println(output.StyleWarning.Render(fmt.Sprintf("%d plant(s) need care.", needsCare)))
	}
}

// statusCell colors a status label to match the summary line. The table
// aligns styled cells by visible width.
func statusCell(s schedule.TaskStatus) string {
	switch s {
	case schedule.StatusOverdue:
		return output.StyleError.Render(s.DisplayText())
	case schedule.StatusDueSoon:
		return output.StyleWarning.Render(s.DisplayText())
	case schedule.StatusOK:
		return output.StyleSuccess.Render(s.DisplayText())
	default:
		return output.StyleMuted.Render(s.DisplayText())
	}
}

// formatDueDate returns the calendar due date, or empty so the table shows
// its placeholder for untracked tasks.
func formatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
