package aggregate

import "Airflow/internal/calc/fan"

type Stats struct {
	Count          int     `json:"count"`
	TotalCFM       float64 `json:"total_cfm"`
	TotalWattsLow  float64 `json:"total_watts_low"`
	TotalWattsHigh float64 `json:"total_watts_high"`
	AvgDB          float64 `json:"avg_db"`
}

// Calculate reduces a fan group to its totals. AvgDB is the mean of per-fan
// dB midpoints and is 0 for an empty group.
func Calculate(records []fan.Record) Stats {
	var s Stats
	var dbSum float64
	for _, r := range records {
		s.TotalCFM += r.CFM
		s.TotalWattsLow += r.WattsLow
		s.TotalWattsHigh += r.WattsHigh
		dbSum += (r.DBLow + r.DBHigh) / 2
	}
	s.Count = len(records)
	if s.Count > 0 {
		s.AvgDB = dbSum / float64(s.Count)
	}
	return s
}
