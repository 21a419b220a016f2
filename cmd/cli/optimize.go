package main

import (
	"fmt"
	"io"

	"heat-optimizer/internal/model"
	"heat-optimizer/internal/optimizer"

	"github.com/spf13/cobra"
)

func newOptimizeCmd(root *rootOptions) *cobra.Command {
	def := model.DefaultSettings()
	var profile, criterion, scenario string
	var showRows bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run an allocation and overwrite the result store",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				s   model.RunSettings
				err error
			)
			if s.Profile, err = model.ParseProfile(profile); err != nil {
				return err
			}
			if s.Criterion, err = model.ParseCriterion(criterion); err != nil {
				return err
			}
			if s.Scenario, err = model.ParseScenario(scenario); err != nil {
				return err
			}

			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			res, err := a.Engine.Optimize(s)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res, showRows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", string(def.Profile), "demand profile: winter|summer")
	cmd.Flags().StringVar(&criterion, "criterion", string(def.Criterion), "ranking objective: cost|co2")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", string(def.Scenario), "fleet subset: A|B")
	cmd.Flags().BoolVar(&showRows, "rows", false, "print every result row")
	return cmd
}

func printResult(w io.Writer, res *optimizer.Result, showRows bool) {
	sum := res.Summary
	fmt.Fprintf(w, "Run %s (%s)\n", res.ID, res.Settings)
	if !res.Saved {
		fmt.Fprintln(w, "No demand data; nothing was written.")
		return
	}
	fmt.Fprintf(w, "%-8s %-10s %-12s %-14s %-10s %-12s\n", "unit", "intervals", "heat", "cost", "fuel", "co2")
	for _, u := range sum.Units {
		fmt.Fprintf(w, "%-8s %-10d %-12.2f %-14.2f %-10.2f %-12.2f\n", u.UnitName, u.Intervals, u.Heat, u.Cost, u.Fuel, u.CO2)
	}
	fmt.Fprintf(w, "Intervals=%d Heat=%.2f MWh Cost=%.2f DKK CO2=%.2f kg\n", sum.Intervals, sum.TotalHeat, sum.TotalCost, sum.TotalCO2)
	if sum.UnmetHeat > 0 {
		fmt.Fprintf(w, "Unmet demand: %.2f MWh over %d intervals\n", sum.UnmetHeat, len(res.Shortfalls))
	}
	if showRows {
		printRows(w, res.Entries)
	}
}

func printRows(w io.Writer, rows []model.ResultEntry) {
	fmt.Fprintf(w, "%-8s %-20s %-8s %-8s %-10s %-8s %-10s\n", "unit", "timestamp", "heat", "elec", "cost", "fuel", "co2")
	for _, r := range rows {
		fmt.Fprintf(w, "%-8s %-20s %-8.2f %-8.2f %-10.2f %-8.2f %-10.2f\n",
			r.UnitName,
			r.Timestamp.Format("2006-01-02 15:04"),
			r.HeatProduced,
			r.ElectricityProduced,
			r.ProductionCost,
			r.FuelConsumption,
			r.CO2Emissions,
		)
	}
}

func newResultsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Print the stored result rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			rows, err := a.Store.Load()
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored results.")
				return nil
			}
			printRows(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}
