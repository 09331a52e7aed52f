package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"latentlab/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded training runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().String("experiment", "", "only show runs of this experiment")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := runlog.Open(viper.GetString("runlog"))
	if err != nil {
		return err
	}
	defer store.Close()

	experiment, _ := cmd.Flags().GetString("experiment")

	runs, err := store.List(experiment)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPERIMENT\tSTARTED\tFINAL COST\tNOTES")

	for _, r := range runs {
		cost := "-"
		if !math.IsNaN(r.FinalCost) {
			cost = fmt.Sprintf("%.5f", r.FinalCost)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Experiment, r.StartedAt.Format("2006-01-02 15:04:05"), cost, r.Notes)
	}

	return w.Flush()
}
