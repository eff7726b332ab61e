package recommend

import (
	"fmt"
	"math"
	"strings"

	"Airflow/internal/calc/pressure"
	"Airflow/internal/calc/summary"
)

type Strategy string

const (
	StrategyAuto     Strategy = "auto"
	StrategyNegative Strategy = "negative"
	StrategyPositive Strategy = "positive"
	StrategyNeutral  Strategy = "neutral"
)

func ParseStrategy(s string) (Strategy, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "", "auto", "auto detect":
		return StrategyAuto, nil
	}
	if c, ok := pressure.ParseCategory(s); ok {
		return fromCategory(c), nil
	}
	return "", fmt.Errorf("invalid strategy %q (allowed: auto, negative, positive, neutral)", s)
}

// Category is the pressure category a strategy asks for. Auto has none.
func (s Strategy) Category() (pressure.Category, bool) {
	switch s {
	case StrategyNegative:
		return pressure.Negative, true
	case StrategyPositive:
		return pressure.Positive, true
	case StrategyNeutral:
		return pressure.Neutral, true
	}
	return "", false
}

func fromCategory(c pressure.Category) Strategy {
	switch c {
	case pressure.Negative:
		return StrategyNegative
	case pressure.Positive:
		return StrategyPositive
	default:
		return StrategyNeutral
	}
}

var advice = map[pressure.Category]string{
	pressure.Negative: "Negative pressure: more exhaust. Best thermal reduction. Requires dust filtering.",
	pressure.Positive: "Positive pressure: more intake. Keeps out dust, use for cleaner data centers. Watch for heat pockets.",
	pressure.Neutral:  "Neutral pressure: balanced flow. Low turbulence and quiet, but not always efficient.",
}

// Tips are general cooling layout guidelines shown with every recommendation.
var Tips = []string{
	"Cold air enters low, hot air exits high.",
	"Avoid turbulence: streamline fan layout.",
	"Isolate hot/cold aisles in server rooms.",
	"Raise PCs off the floor to reduce dust.",
	"Use PWM hubs or motherboard fan curves.",
}

type Input struct {
	Strategy Strategy        `json:"strategy"`
	Summary  summary.Summary `json:"summary"`
}

type Result struct {
	Strategy            Strategy          `json:"strategy"`
	Detected            pressure.Category `json:"detected"`
	Matches             bool              `json:"matches"`
	Advice              string            `json:"advice"`
	AdditionalCFMNeeded float64           `json:"additional_cfm_needed"`
	Status              string            `json:"status"`
	Tips                []string          `json:"tips"`
	Notes               string            `json:"notes"`
}

func Advise(in Input) (Result, error) {
	st := in.Strategy
	if st == "" {
		st = StrategyAuto
	}
	detected := in.Summary.Pressure.Category
	want, ok := st.Category()
	if st != StrategyAuto && !ok {
		return Result{}, fmt.Errorf("invalid strategy %q", st)
	}
	if !ok {
		want = detected
	}

	res := Result{
		Strategy:            st,
		Detected:            detected,
		Matches:             detected == want,
		Advice:              advice[want],
		AdditionalCFMNeeded: math.Max(0, -in.Summary.Target.SurplusCFM),
		Status:              in.Summary.Target.Status.Message(),
		Tips:                append([]string(nil), Tips...),
	}
	if !res.Matches {
		res.Notes = fmt.Sprintf("Layout is %s (%+.2f CFM) but %s pressure was requested.", detected, in.Summary.Pressure.DifferentialCFM, want)
	}
	return res, nil
}
