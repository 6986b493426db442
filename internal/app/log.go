package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

var logDate string

var logCmd = &cobra.Command{
	Use:   "log <event> <plant>",
	Short: "Record a care event",
	Long: `Record a care event for a plant. Events are append-only; watering and
fertilizing events drive the due schedule and the suggestion analysis.

Event kinds: ` + strings.Join(store.EventTypes, ", ") + `

The --date flag accepts YYYY-MM-DD or natural language ("yesterday",
"2 days ago", "last tuesday").`,
	Args: cobra.ExactArgs(2),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "When the event happened (default: now)")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	eventType, plantName := args[0], args[1]
	if !validEventType(eventType) {
		return fmt.Errorf("unknown event %q (one of: %s)", eventType, strings.Join(store.EventTypes, ", "))
	}

	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plant, err := findPlant(db, plantName)
	if err != nil {
		return err
	}

	eventDate, err := parseEventDate(logDate, time.Now())
	if err != nil {
		return err
	}

	event, err := db.InsertCareEvent(plant.ID, eventType, eventDate)
	if err != nil {
		return fmt.Errorf("logging event: %w", err)
	}

	fmt.Printf("Logged %s for %s on %s\n",
		event.EventType,
		output.StyleBold.Render(plant.Name),
		event.EventDate.Format("2006-01-02"))
	return nil
}

func validEventType(eventType string) bool {
	for _, t := range store.EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// parseEventDate turns the --date flag into a timestamp. Empty means now;
// otherwise try YYYY-MM-DD, then natural language relative to now.
func parseEventDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(raw, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand date %q", raw)
	}
	if r.Time.After(now) {
		return time.Time{}, fmt.Errorf("event date %s is in the future", r.Time.Format("2006-01-02"))
	}
	return r.Time, nil
}
