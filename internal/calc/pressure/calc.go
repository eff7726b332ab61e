package pressure

type Category string

const (
	Positive Category = "Positive"
	Negative Category = "Negative"
	Neutral  Category = "Neutral"
)

// Threshold is the differential (CFM) that must be exceeded to leave Neutral.
const Threshold = 10.0

type Result struct {
	Category        Category `json:"category"`
	DifferentialCFM float64  `json:"differential_cfm"`
}

// Classify compares intake and exhaust airflow. A differential of exactly
// ±Threshold is still Neutral.
func Classify(intakeCFM, exhaustCFM float64) Result {
	diff := intakeCFM - exhaustCFM
	cat := Neutral
	if diff > Threshold {
		cat = Positive
	} else if diff < -Threshold {
		cat = Negative
	}
	return Result{Category: cat, DifferentialCFM: diff}
}

// ParseCategory accepts "positive", "Negative Pressure" and similar spellings.
func ParseCategory(s string) (Category, bool) {
	switch normalize(s) {
	case "positive":
		return Positive, true
	case "negative":
		return Negative, true
	case "neutral":
		return Neutral, true
	}
	return "", false
}
