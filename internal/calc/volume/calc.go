package volume

import (
	"errors"
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

const (
	LitersPerCubicMeter    = 1000.0
	CubicFeetPerCubicMeter = 35.3147
	MinutesPerHour         = 60.0
)

// Volume is stored in cubic meters; liters are always derived from it so the
// two units cannot drift apart.
type Volume struct {
	m3 float64
}

func FromCubicMeters(m3 float64) Volume { return Volume{m3: m3} }

func FromLiters(liters float64) Volume { return Volume{m3: liters / LitersPerCubicMeter} }

func (v Volume) CubicMeters() float64 { return v.m3 }

func (v Volume) Liters() float64 { return v.m3 * LitersPerCubicMeter }

func (v Volume) CubicFeet() float64 { return v.m3 * CubicFeetPerCubicMeter }

type wireVolume struct {
	M3     *float64 `json:"m3,omitempty"`
	Liters *float64 `json:"liters,omitempty"`
}

func (v Volume) MarshalJSON() ([]byte, error) {
	m3, l := v.CubicMeters(), v.Liters()
	return json.Marshal(wireVolume{M3: &m3, Liters: &l})
}

func (v *Volume) UnmarshalJSON(data []byte) error {
	var w wireVolume
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	for _, p := range []*float64{w.M3, w.Liters} {
		if p != nil && !finite(*p) {
			return ErrNotFinite
		}
	}
	switch {
	case w.M3 != nil && w.Liters != nil:
		if math.Abs(*w.M3*LitersPerCubicMeter-*w.Liters) > 1e-9*math.Max(1, math.Abs(*w.Liters)) {
			return fmt.Errorf("volume: m3 %g and liters %g disagree", *w.M3, *w.Liters)
		}
		*v = FromCubicMeters(*w.M3)
	case w.M3 != nil:
		*v = FromCubicMeters(*w.M3)
	case w.Liters != nil:
		*v = FromLiters(*w.Liters)
	default:
		*v = Volume{}
	}
	return nil
}

var (
	ErrAmbiguousEdit = errors.New("volume edit must set exactly one of liters or m3")
	ErrNotFinite     = errors.New("volume must be a finite number")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Edit is a single user change to the volume. The unit that was edited wins.
type Edit struct {
	Liters *float64 `json:"liters,omitempty"`
	M3     *float64 `json:"m3,omitempty"`
}

func (e Edit) Apply() (Volume, error) {
	for _, p := range []*float64{e.Liters, e.M3} {
		if p != nil && !finite(*p) {
			return Volume{}, ErrNotFinite
		}
	}
	switch {
	case e.Liters != nil && e.M3 == nil:
		return FromLiters(*e.Liters), nil
	case e.M3 != nil && e.Liters == nil:
		return FromCubicMeters(*e.M3), nil
	}
	return Volume{}, ErrAmbiguousEdit
}

type Cycles struct {
	Computable bool    `json:"computable"`
	VolumeFt3  float64 `json:"volume_ft3"`
	PerMinute  float64 `json:"per_minute"`
	PerHour    float64 `json:"per_hour"`
}

// AirCycles is how many times the enclosure air is replaced by totalCFM.
// A non-positive volume is reported as not computable.
func AirCycles(totalCFM, volumeM3 float64) Cycles {
	ft3 := volumeM3 * CubicFeetPerCubicMeter
	if ft3 <= 0 {
		return Cycles{VolumeFt3: ft3}
	}
	perMin := totalCFM / ft3
	return Cycles{
		Computable: true,
		VolumeFt3:  ft3,
		PerMinute:  perMin,
		PerHour:    perMin * MinutesPerHour,
	}
}
