package main

import (
	"errors"
	"fmt"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/model"

	"github.com/spf13/cobra"
)

func newDemandCmd(root *rootOptions) *cobra.Command {
	var profile, start, end string
	var showRows bool

	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Describe a demand profile or a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (start == "") != (end == "") {
				return errors.New("--start and --end must be given together")
			}
			a, err := root.open()
			if err != nil {
				return err
			}
			defer closeApp(cmd, a)

			var intervals []model.HeatDemand
			if start != "" {
				from, err := demand.ParseTime(start)
				if err != nil {
					return err
				}
				to, err := demand.ParseTime(end)
				if err != nil {
					return err
				}
				intervals = a.Demand.Range(from, to)
			} else {
				p, err := model.ParseProfile(profile)
				if err != nil {
					return err
				}
				intervals = a.Demand.Profile(p)
			}

			w := cmd.OutOrStdout()
			st := analysis.DescribeDemand(intervals)
			if st.Count == 0 {
				fmt.Fprintln(w, "No demand intervals.")
				return nil
			}
			fmt.Fprintf(w, "Intervals=%d %s .. %s\n", st.Count, st.Start.Format("2006-01-02 15:04"), st.End.Format("2006-01-02 15:04"))
			fmt.Fprintf(w, "Heat total=%.2f peak=%.2f MWh\n", st.TotalHeat, st.PeakHeat)
			fmt.Fprintf(w, "Price min/mean/max=%.2f/%.2f/%.2f p05-p95=%.2f-%.2f\n", st.MinPrice, st.MeanPrice, st.MaxPrice, st.P05Price, st.P95Price)
			if showRows {
				fmt.Fprintf(w, "%-18s %-18s %-8s %-10s\n", "from", "to", "heat", "price")
				for _, d := range intervals {
					fmt.Fprintf(w, "%-18s %-18s %-8.2f %-10.2f\n", d.TimeFrom.Format("2006-01-02 15:04"), d.TimeTo.Format("2006-01-02 15:04"), d.Heat, d.ElectricityPrice)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", string(model.ProfileWinter), "demand profile: winter|summer")
	cmd.Flags().StringVar(&start, "start", "", "range start (RFC3339 or M/d/yyyy H:mm)")
	cmd.Flags().StringVar(&end, "end", "", "range end")
	cmd.Flags().BoolVar(&showRows, "rows", false, "print every interval")
	return cmd
}
