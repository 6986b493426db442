package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leafbook/plantwatch/internal/output"
	"github.com/spf13/cobra"
)

var plantsAddType string

var plantsCmd = &cobra.Command{
	Use:   "plants",
	Short: "Add and list tracked plants",
}

var plantsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start tracking a plant",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlantsAdd,
}

var plantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked plants",
	Args:  cobra.NoArgs,
	RunE:  runPlantsList,
}

func init() {
	plantsAddCmd.Flags().StringVar(&plantsAddType, "type", "", "Plant type name (drives recommended intervals)")
	plantsCmd.AddCommand(plantsAddCmd)
	plantsCmd.AddCommand(plantsListCmd)
	rootCmd.AddCommand(plantsCmd)
}

func runPlantsAdd(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.CreatePlant(args[0], plantsAddType)
	if err != nil {
		return fmt.Errorf("creating plant: %w", err)
	}

	fmt.Printf("Tracking %s", output.StyleBold.Render(p.Name))
	if p.TypeName != "" {
		fmt.Printf(" (%s)", p.TypeName)
	}
	fmt.Println()
	return nil
}

func runPlantsList(cmd *cobra.Command, args []string) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	plants, err := db.ListPlants()
	if err != nil {
		return fmt.Errorf("listing plants: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plants)
	}

	if len(plants) == 0 {
		fmt.Println("No plants yet. Add one with 'plantwatch plants add <name>'.")
		return nil
	}

	tbl := output.NewTable("PLANT", "TYPE", "TRACKED SINCE")
	for _, p := range plants {
		tbl.AddRow(p.Name, p.TypeName, p.CreatedAt.Format("2006-01-02"))
	}
	tbl.Print()
	return nil
}
