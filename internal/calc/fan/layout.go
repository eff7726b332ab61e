package fan

import "fmt"

// Reference slicing: first 3 rows intake, next 2 exhaust, the rest hardware.
const (
	IntakeRows  = 3
	ExhaustRows = 2
)

// Layout holds the three fan groups of one enclosure.
type Layout struct {
	Intake   []Record `json:"intake"`
	Exhaust  []Record `json:"exhaust"`
	Hardware []Record `json:"hardware"`
}

func (l Layout) Group(role Role) []Record {
	switch role {
	case RoleIntake:
		return l.Intake
	case RoleExhaust:
		return l.Exhaust
	case RoleHardware:
		return l.Hardware
	}
	return nil
}

func (l *Layout) SetGroup(role Role, rows []Record) error {
	switch role {
	case RoleIntake:
		l.Intake = rows
	case RoleExhaust:
		l.Exhaust = rows
	case RoleHardware:
		l.Hardware = rows
	default:
		return fmt.Errorf("unknown fan group %q", role)
	}
	return nil
}

// Len is the total number of rows across all groups.
func (l Layout) Len() int {
	return len(l.Intake) + len(l.Exhaust) + len(l.Hardware)
}

// Clone returns a copy that shares no backing arrays with l.
func (l Layout) Clone() Layout {
	return Layout{
		Intake:   cloneRows(l.Intake),
		Exhaust:  cloneRows(l.Exhaust),
		Hardware: cloneRows(l.Hardware),
	}
}

// Rows flattens the layout back into template order.
func (l Layout) Rows() []Record {
	out := make([]Record, 0, l.Len())
	out = append(out, l.Intake...)
	out = append(out, l.Exhaust...)
	return append(out, l.Hardware...)
}

// RoleAt is the group a row lands in by its position in a template or sheet.
func RoleAt(i int) Role {
	switch {
	case i < IntakeRows:
		return RoleIntake
	case i < IntakeRows+ExhaustRows:
		return RoleExhaust
	default:
		return RoleHardware
	}
}

// Partition splits rows by position. Short inputs yield empty trailing groups.
func Partition(rows []Record) Layout {
	n := len(rows)
	a := min(IntakeRows, n)
	b := min(IntakeRows+ExhaustRows, n)
	return Layout{
		Intake:   cloneRows(rows[:a]),
		Exhaust:  cloneRows(rows[a:b]),
		Hardware: cloneRows(rows[b:]),
	}
}

func cloneRows(rows []Record) []Record {
	out := make([]Record, len(rows))
	copy(out, rows)
	return out
}
