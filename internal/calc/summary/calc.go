package summary

import (
	"Airflow/internal/calc/aggregate"
	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/pressure"
	"Airflow/internal/calc/target"
	"Airflow/internal/calc/volume"
)

const MsgVolumeNotPositive = "Enclosure volume must be greater than zero to compute air cycles."

type Input struct {
	Layout fan.Layout    `json:"layout"`
	Volume volume.Volume `json:"volume"`
}

type Summary struct {
	Intake          aggregate.Stats `json:"intake"`
	Exhaust         aggregate.Stats `json:"exhaust"`
	Hardware        aggregate.Stats `json:"hardware"`
	SuppliedCFM     float64         `json:"supplied_cfm"`
	Pressure        pressure.Result `json:"pressure"`
	Target          target.Result   `json:"target"`
	Volume          volume.Volume   `json:"volume"`
	Cycles          volume.Cycles   `json:"cycles"`
	StatusMessage   string          `json:"status_message"`
	Validation      []string        `json:"validation,omitempty"`
	StaticPressures []StaticPoint   `json:"static_pressures,omitempty"`
}

// StaticPoint reports a fan's static pressure. It is informational only.
type StaticPoint struct {
	Role           fan.Role `json:"role"`
	Name           string   `json:"name"`
	StaticPressure float64  `json:"static_pressure_mmh2o"`
}

// Calculate runs the whole pipeline from scratch. Supplied airflow is intake
// plus exhaust and drives both the surplus and the air-cycle rate.
func Calculate(in Input) Summary {
	s := Summary{
		Intake:   aggregate.Calculate(in.Layout.Intake),
		Exhaust:  aggregate.Calculate(in.Layout.Exhaust),
		Hardware: aggregate.Calculate(in.Layout.Hardware),
		Volume:   in.Volume,
	}
	s.SuppliedCFM = s.Intake.TotalCFM + s.Exhaust.TotalCFM
	s.Pressure = pressure.Classify(s.Intake.TotalCFM, s.Exhaust.TotalCFM)
	s.Target = target.Evaluate(s.Hardware.TotalCFM, s.SuppliedCFM)
	s.StatusMessage = s.Target.Status.Message()
	s.Cycles = volume.AirCycles(s.SuppliedCFM, in.Volume.CubicMeters())
	if !s.Cycles.Computable {
		s.Validation = append(s.Validation, MsgVolumeNotPositive)
	}
	for _, role := range fan.Roles {
		for _, r := range in.Layout.Group(role) {
			s.Validation = append(s.Validation, r.Warnings()...)
			s.StaticPressures = append(s.StaticPressures, StaticPoint{Role: role, Name: r.Name, StaticPressure: r.StaticPressure})
		}
	}
	return s
}
