package target

// Headroom is the multiplier applied to hardware airflow to get the optimal target.
const Headroom = 1.25

type Status string

const (
	Insufficient Status = "insufficient"
	Excessive    Status = "excessive"
	Optimal      Status = "optimal"
)

type Result struct {
	OptimalCFM float64 `json:"optimal_cfm"`
	SurplusCFM float64 `json:"surplus_cfm"`
	Status     Status  `json:"status"`
}

// Evaluate compares supplied airflow (intake + exhaust) against the hardware load.
func Evaluate(hardwareCFM, suppliedCFM float64) Result {
	optimal := hardwareCFM * Headroom
	surplus := suppliedCFM - hardwareCFM
	return Result{
		OptimalCFM: optimal,
		SurplusCFM: surplus,
		Status:     Classify(surplus, optimal),
	}
}

// Classify buckets a surplus. Both comparisons are strict, so surplus == 0
// and surplus == optimal are Optimal.
func Classify(surplus, optimal float64) Status {
	switch {
	case surplus < 0:
		return Insufficient
	case surplus > optimal:
		return Excessive
	default:
		return Optimal
	}
}

func (s Status) Message() string {
	switch s {
	case Insufficient:
		return "Airflow is insufficient. Consider adding more fans or optimizing intake/exhaust positioning."
	case Excessive:
		return "Airflow may be excessive and could cause turbulence or recirculation. Tune flow path."
	case Optimal:
		return "Airflow is within optimal cooling range."
	}
	return ""
}
