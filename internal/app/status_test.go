package app

import (
	"testing"
	"time"

	"github.com/leafbook/plantwatch/internal/config"
	"github.com/leafbook/plantwatch/internal/schedule"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Care:     config.DefaultCare,
		Analysis: config.DefaultAnalysis,
		Output:   config.DefaultOutput,
	}
}

func TestBuildDueTasks_LayeredResolution(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()
	cfg := testConfig()

	watering := 12
	require.NoError(t, db.UpsertPlantType(&store.PlantType{
		Name:                  "Ficus",
		WateringFrequencyDays: &watering,
	}))

	_, err = db.CreatePlant("Figgy", "Ficus")
	require.NoError(t, err)
	_, err = db.CreatePlant("Mystery", "")
	require.NoError(t, err)
	overridden, err := db.CreatePlant("Thirsty", "Ficus")
	require.NoError(t, err)
	three := 3
	require.NoError(t, db.SetWateringOverride(overridden.ID, &three))

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	plants, err := db.ListPlants()
	require.NoError(t, err)

	tasks, err := buildDueTasks(db, cfg, plants, now)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	byName := map[string]schedule.DueTask{}
	for _, task := range tasks {
		byName[task.PlantName] = task
	}

	// Type recommendation beats the default; override beats both.
	assert.Equal(t, 12, byName["Figgy"].WateringFrequencyDays)
	assert.Equal(t, cfg.Care.WateringIntervalDays, byName["Mystery"].WateringFrequencyDays)
	assert.Equal(t, 3, byName["Thirsty"].WateringFrequencyDays)

	// No events logged anywhere yet.
	for name, task := range byName {
		assert.Equal(t, schedule.StatusNotStarted, task.WateringStatus, name)
		assert.Equal(t, schedule.StatusNotStarted, task.FertilizingStatus, name)
	}
}

func TestBuildDueTasks_StatusFromEvents(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()
	cfg := testConfig()

	p, err := db.CreatePlant("Monstera", "")
	require.NoError(t, err)

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	// Watered 8 days ago on the default 7-day interval: overdue.
	_, err = db.InsertCareEvent(p.ID, store.EventWatered, now.AddDate(0, 0, -8))
	require.NoError(t, err)
	// Fertilized 10 days ago on the default 30-day interval: fine.
	_, err = db.InsertCareEvent(p.ID, store.EventFertilized, now.AddDate(0, 0, -10))
	require.NoError(t, err)

	plants, err := db.ListPlants()
	require.NoError(t, err)
	tasks, err := buildDueTasks(db, cfg, plants, now)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, schedule.StatusOverdue, tasks[0].WateringStatus)
	assert.Equal(t, schedule.StatusOK, tasks[0].FertilizingStatus)
	require.NotNil(t, tasks[0].WaterDueAt)
	assert.Equal(t, now.AddDate(0, 0, -1).Format("2006-01-02"), tasks[0].WaterDueAt.Format("2006-01-02"))
}

func TestDetectSuggestions_EndToEnd(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()
	cfg := testConfig()

	p, err := db.CreatePlant("Pothos", "")
	require.NoError(t, err)

	// Six waterings every 10 days against the default 7-day interval.
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		_, err := db.InsertCareEvent(p.ID, store.EventWatered, start.AddDate(0, 0, i*10))
		require.NoError(t, err)
	}

	now := start.AddDate(0, 0, 60)
	require.NoError(t, detectSuggestions(db, cfg, now))

	active, err := db.GetActiveSuggestion(p.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 10, active.SuggestedIntervalDays)
	assert.Equal(t, 7, active.CurrentIntervalDays)

	// Running detection again must not create a second suggestion.
	require.NoError(t, detectSuggestions(db, cfg, now))
	all, err := db.ListActiveSuggestions()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDetectSuggestions_SkipsSparseHistory(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()
	cfg := testConfig()

	p, err := db.CreatePlant("Cactus", "")
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := db.InsertCareEvent(p.ID, store.EventWatered, start.AddDate(0, 0, i*20))
		require.NoError(t, err)
	}

	require.NoError(t, detectSuggestions(db, cfg, start.AddDate(0, 0, 90)))
	active, err := db.GetActiveSuggestion(p.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}
