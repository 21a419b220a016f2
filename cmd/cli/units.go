package main

import (
	"fmt"
	"io"

	"heat-optimizer/internal/catalog"
	"heat-optimizer/internal/model"

	"github.com/spf13/cobra"
)

func newUnitsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Inspect and configure production units",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the unit catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)
			printUnits(cmd.OutOrStdout(), a.Catalog.List())
			return nil
		},
	}

	scenario := &cobra.Command{
		Use:   "scenario <A|B>",
		Short: "Load a scenario's preset values into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := model.ParseScenario(args[0])
			if err != nil {
				return err
			}
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)
			if err := a.Catalog.ApplyScenario(s); err != nil {
				return err
			}
			printUnits(cmd.OutOrStdout(), a.Catalog.List())
			return nil
		},
	}

	disable := &cobra.Command{
		Use:   "disable <name>",
		Short: "Zero every value of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)
			u, err := a.Catalog.Disable(args[0])
			if err != nil {
				return err
			}
			printUnits(cmd.OutOrStdout(), []model.ProductionUnit{u})
			return nil
		},
	}

	var useDefaults bool
	enable := &cobra.Command{
		Use:   "enable <name>",
		Short: "Re-enable a unit, optionally restoring its default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)
			var defaults *catalog.Defaults
			if useDefaults {
				defaults = a.Defaults
			}
			u, err := a.Catalog.Enable(args[0], defaults)
			if err != nil {
				return err
			}
			printUnits(cmd.OutOrStdout(), []model.ProductionUnit{u})
			return nil
		},
	}
	enable.Flags().BoolVar(&useDefaults, "defaults", false, "copy values from the default-values reference")

	cmd.AddCommand(list, scenario, disable, enable)
	return cmd
}

func printUnits(w io.Writer, units []model.ProductionUnit) {
	fmt.Fprintf(w, "%-6s %-9s %-8s %-8s %-8s %-8s %-8s\n", "name", "role", "heat", "elec", "cost", "co2", "fuel")
	for _, u := range units {
		fmt.Fprintf(w, "%-6s %-9s %-8s %-8s %-8s %-8s %-8s\n",
			u.Name,
			u.ElectricityRole(),
			u.MaxHeat,
			u.MaxElectricity,
			u.ProductionCosts,
			u.CO2Emissions,
			u.FuelConsumption,
		)
	}
}
