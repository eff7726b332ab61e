package fan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Columns is the tabular fan schema. Order matters for spreadsheet and template rows.
var Columns = []string{
	"Fan Name",
	"Static Pressure (mmH2O)",
	"CFM",
	"Watts Low",
	"Watts High",
	"dB Low",
	"dB High",
}

type Role string

const (
	RoleIntake   Role = "intake"
	RoleExhaust  Role = "exhaust"
	RoleHardware Role = "hardware"
)

// Roles lists the groups in display order.
var Roles = []Role{RoleIntake, RoleExhaust, RoleHardware}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleIntake:
		return RoleIntake, nil
	case RoleExhaust:
		return RoleExhaust, nil
	case RoleHardware, "server", "nodes":
		return RoleHardware, nil
	default:
		return "", fmt.Errorf("unknown fan group %q (allowed: intake, exhaust, hardware)", s)
	}
}

// Record is one fan or cooling unit. StaticPressure is carried for display only.
type Record struct {
	Name           string  `json:"name" yaml:"name"`
	StaticPressure float64 `json:"static_pressure" yaml:"static_pressure"`
	CFM            float64 `json:"cfm" yaml:"cfm"`
	WattsLow       float64 `json:"watts_low" yaml:"watts_low"`
	WattsHigh      float64 `json:"watts_high" yaml:"watts_high"`
	DBLow          float64 `json:"db_low" yaml:"db_low"`
	DBHigh         float64 `json:"db_high" yaml:"db_high"`
}

// RawRecord is a record as it arrives from JSON or YAML. Numeric fields are
// pointers so a missing field can be told apart from zero.
type RawRecord struct {
	Name           string   `json:"name" yaml:"name"`
	StaticPressure *float64 `json:"static_pressure" yaml:"static_pressure"`
	CFM            *float64 `json:"cfm" yaml:"cfm"`
	WattsLow       *float64 `json:"watts_low" yaml:"watts_low"`
	WattsHigh      *float64 `json:"watts_high" yaml:"watts_high"`
	DBLow          *float64 `json:"db_low" yaml:"db_low"`
	DBHigh         *float64 `json:"db_high" yaml:"db_high"`
}

// Record checks that every numeric field is present and finite.
func (raw RawRecord) Record() (Record, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"static_pressure", raw.StaticPressure},
		{"cfm", raw.CFM},
		{"watts_low", raw.WattsLow},
		{"watts_high", raw.WattsHigh},
		{"db_low", raw.DBLow},
		{"db_high", raw.DBHigh},
	}
	for _, f := range fields {
		if f.v == nil {
			return Record{}, &FieldError{Field: f.name, Record: raw.Name}
		}
		if !Finite(*f.v) {
			return Record{}, &ParseError{Column: f.name, Value: strconv.FormatFloat(*f.v, 'g', -1, 64), Err: ErrNotFinite}
		}
	}
	return Record{
		Name:           raw.Name,
		StaticPressure: *raw.StaticPressure,
		CFM:            *raw.CFM,
		WattsLow:       *raw.WattsLow,
		WattsHigh:      *raw.WattsHigh,
		DBLow:          *raw.DBLow,
		DBHigh:         *raw.DBHigh,
	}, nil
}

// UnmarshalJSON rejects records with missing or non-numeric fields so bad
// input never reaches the aggregation math.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("fan record: %w", err)
	}
	rec, err := raw.Record()
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Warnings reports values that are well-typed but suspicious. They never block a calculation.
func (r Record) Warnings() []string {
	var out []string
	if r.CFM < 0 || r.StaticPressure < 0 || r.WattsLow < 0 || r.WattsHigh < 0 || r.DBLow < 0 || r.DBHigh < 0 {
		out = append(out, fmt.Sprintf("%s: negative values", r.label()))
	}
	if r.WattsLow > r.WattsHigh {
		out = append(out, fmt.Sprintf("%s: watts low is above watts high", r.label()))
	}
	if r.DBLow > r.DBHigh {
		out = append(out, fmt.Sprintf("%s: dB low is above dB high", r.label()))
	}
	return out
}

func (r Record) label() string {
	if r.Name == "" {
		return "unnamed fan"
	}
	return r.Name
}

// Row renders the record in Columns order.
func (r Record) Row() []any {
	return []any{r.Name, r.StaticPressure, r.CFM, r.WattsLow, r.WattsHigh, r.DBLow, r.DBHigh}
}

// ParseRow converts a tabular row (Columns order) into a Record.
func ParseRow(row []string) (Record, error) {
	if len(row) < len(Columns) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}
	var vals [6]float64
	for i := range vals {
		col := i + 1
		s := strings.TrimSpace(row[col])
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, &ParseError{Column: Columns[col], Value: row[col], Err: err}
		}
		if !Finite(v) {
			return Record{}, &ParseError{Column: Columns[col], Value: row[col], Err: ErrNotFinite}
		}
		vals[i] = v
	}
	return Record{
		Name:           strings.TrimSpace(row[0]),
		StaticPressure: vals[0],
		CFM:            vals[1],
		WattsLow:       vals[2],
		WattsHigh:      vals[3],
		DBLow:          vals[4],
		DBHigh:         vals[5],
	}, nil
}
