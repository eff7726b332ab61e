package main

import (
	"fmt"
	"io"

	"Airflow/internal/calc/aggregate"
	"Airflow/internal/calc/premium/importer"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/summary"
)

func printRowErrors(w io.Writer, errs []importer.RowError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "SKIPPED ROWS (%d):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "  %s row %d: %s\n", e.Sheet, e.Row, e.Error)
	}
	fmt.Fprintln(w)
}

func printGroup(w io.Writer, label string, s aggregate.Stats) {
	fmt.Fprintf(w, "  %-9s %3d fans  %8.2f CFM  %6.1f-%-6.1f W  avg %5.1f dB\n",
		label, s.Count, s.TotalCFM, s.TotalWattsLow, s.TotalWattsHigh, s.AvgDB)
}

func printSummary(w io.Writer, s summary.Summary) {
	fmt.Fprintln(w, "GROUPS:")
	printGroup(w, "Intake", s.Intake)
	printGroup(w, "Exhaust", s.Exhaust)
	printGroup(w, "Hardware", s.Hardware)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Pressure:     %s (%+.2f CFM)\n", s.Pressure.Category, s.Pressure.DifferentialCFM)
	fmt.Fprintf(w, "Supplied:     %.2f CFM\n", s.SuppliedCFM)
	fmt.Fprintf(w, "Optimal:      %.2f CFM\n", s.Target.OptimalCFM)
	fmt.Fprintf(w, "Surplus:      %+.2f CFM\n", s.Target.SurplusCFM)
	fmt.Fprintf(w, "Volume:       %.2f L / %.4f m3\n", s.Volume.Liters(), s.Volume.CubicMeters())
	if s.Cycles.Computable {
		fmt.Fprintf(w, "Air cycles:   %.2f /min, %.1f /h\n", s.Cycles.PerMinute, s.Cycles.PerHour)
	} else {
		fmt.Fprintln(w, "Air cycles:   n/a")
	}
	fmt.Fprintf(w, "Status:       %s\n", s.StatusMessage)

	if len(s.Validation) > 0 {
		fmt.Fprintf(w, "\nWARNINGS (%d):\n", len(s.Validation))
		for _, v := range s.Validation {
			fmt.Fprintf(w, "  * %s\n", v)
		}
	}
}

func printRecommendation(w io.Writer, r recommend.Result) {
	fmt.Fprintf(w, "\nStrategy:     %s\n", r.Strategy)
	fmt.Fprintf(w, "Advice:       %s\n", r.Advice)
	if r.Notes != "" {
		fmt.Fprintf(w, "Note:         %s\n", r.Notes)
	}
	if r.AdditionalCFMNeeded > 0 {
		fmt.Fprintf(w, "Add at least %.2f CFM of supply.\n", r.AdditionalCFMNeeded)
	}
}
