package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leafbook/plantwatch/internal/output"
	"github.com/leafbook/plantwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	typesSetWatering    int
	typesSetFertilizing int
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Manage recommended intervals per plant type",
}

var typesSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set a type's recommended watering/fertilizing intervals",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypesSet,
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plant types and their recommendations",
	Args:  cobra.NoArgs,
	RunE:  runTypesList,
}

func init() {
	typesSetCmd.Flags().IntVar(&typesSetWatering, "watering", 0, "Recommended days between waterings (omitted intervals are kept)")
	typesSetCmd.Flags().IntVar(&typesSetFertilizing, "fertilizing", 0, "Recommended days between fertilizings (omitted intervals are kept)")
	typesCmd.AddCommand(typesSetCmd)
	typesCmd.AddCommand(typesListCmd)
	rootCmd.AddCommand(typesCmd)
}

func runTypesSet(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	// Only flags given on the command line are written; the upsert keeps
	// the other interval untouched.
	pt := &store.PlantType{Name: args[0]}
	if cmd.Flags().Changed("watering") {
		if typesSetWatering <= 0 {
			return fmt.Errorf("--watering must be a positive number of days")
		}
		pt.WateringFrequencyDays = &typesSetWatering
	}
	if cmd.Flags().Changed("fertilizing") {
		if typesSetFertilizing <= 0 {
			return fmt.Errorf("--fertilizing must be a positive number of days")
		}
		pt.FertilizingFrequencyDays = &typesSetFertilizing
	}
	if pt.WateringFrequencyDays == nil && pt.FertilizingFrequencyDays == nil {
		return fmt.Errorf("provide --watering and/or --fertilizing")
	}

	if err := db.UpsertPlantType(pt); err != nil {
		return fmt.Errorf("saving plant type: %w", err)
	}

	fmt.Printf("Saved recommendations for %s\n", output.StyleBold.Render(pt.Name))
	return nil
}

func runTypesList(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	types, err := db.ListPlantTypes()
	if err != nil {
		return fmt.Errorf("listing plant types: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(types)
	}

	if len(types) == 0 {
		fmt.Println("No plant types yet. Add one with 'plantwatch types set <name>'.")
		return nil
	}

	tbl := output.NewTable("TYPE", "WATERING", "FERTILIZING")
	for _, pt := range types {
		tbl.AddRow(pt.Name, formatDays(pt.WateringFrequencyDays), formatDays(pt.FertilizingFrequencyDays))
	}
	tbl.Print()
	return nil
}

func formatDays(days *int) string {
	if days == nil {
		return "" // table renders its placeholder
	}
	return fmt.Sprintf("every %d days", *days)
}
