package autodesign

import (
	"fmt"

	"Airflow/internal/calc/aggregate"
	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/pressure"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/volume"
)

// MaxAddedPerGroup bounds the search.
const MaxAddedPerGroup = 64

type BalanceInput struct {
	Layout   fan.Layout         `json:"layout"`
	Volume   volume.Volume      `json:"volume"`
	Fan      fan.Record         `json:"fan"`
	Strategy recommend.Strategy `json:"strategy"`
}

type BalanceResult struct {
	AddIntake  int             `json:"add_intake"`
	AddExhaust int             `json:"add_exhaust"`
	Layout     fan.Layout      `json:"layout"`
	Summary    summary.Summary `json:"summary"`
	Notes      string          `json:"notes"`
}

// Balance finds the fewest extra copies of in.Fan on the intake and exhaust
// sides that remove any airflow deficit and reach the requested pressure.
func Balance(in BalanceInput) (BalanceResult, error) {
	if in.Fan.CFM <= 0 {
		return BalanceResult{}, fmt.Errorf("fan cfm must be positive")
	}
	want, fixed := in.Strategy.Category()
	if in.Strategy != "" && in.Strategy != recommend.StrategyAuto && !fixed {
		return BalanceResult{}, fmt.Errorf("invalid strategy %q", in.Strategy)
	}

	intake := aggregate.Calculate(in.Layout.Intake).TotalCFM
	exhaust := aggregate.Calculate(in.Layout.Exhaust).TotalCFM
	hardware := aggregate.Calculate(in.Layout.Hardware).TotalCFM
	cfm := in.Fan.CFM

	best, bestI, bestE := -1, 0, 0
	for total := 0; total <= 2*MaxAddedPerGroup && best < 0; total++ {
		for i := max(0, total-MaxAddedPerGroup); i <= min(total, MaxAddedPerGroup); i++ {
			e := total - i
			ti := intake + float64(i)*cfm
			te := exhaust + float64(e)*cfm
			if ti+te-hardware < 0 {
				continue
			}
			if fixed && pressure.Classify(ti, te).Category != want {
				continue
			}
			best, bestI, bestE = total, i, e
			break
		}
	}
	if best < 0 {
		return BalanceResult{}, fmt.Errorf("no balance found within %d added fans per group", MaxAddedPerGroup)
	}

	l := in.Layout.Clone()
	for n := 0; n < bestI; n++ {
		l.Intake = append(l.Intake, named(in.Fan, "Added Intake", n+1))
	}
	for n := 0; n < bestE; n++ {
		l.Exhaust = append(l.Exhaust, named(in.Fan, "Added Exhaust", n+1))
	}
	return BalanceResult{
		AddIntake:  bestI,
		AddExhaust: bestE,
		Layout:     l,
		Summary:    summary.Calculate(summary.Input{Layout: l, Volume: in.Volume}),
		Notes:      "Fewest added fans that clear the deficit and match the requested pressure.",
	}, nil
}

func named(r fan.Record, prefix string, n int) fan.Record {
	base := r.Name
	if base == "" {
		base = "Fan"
	}
	r.Name = fmt.Sprintf("%s %d (%s)", prefix, n, base)
	return r
}
