package session

import (
	"errors"
	"fmt"
	"time"

	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/template"
	"Airflow/internal/calc/volume"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrRowNotFound = errors.New("row not found")
)

// Session is the editable state behind one calculator screen.
type Session struct {
	ID        string             `json:"id"`
	Owner     int                `json:"owner"`
	Template  string             `json:"template"`
	Layout    fan.Layout         `json:"layout"`
	Volume    volume.Volume      `json:"volume"`
	Strategy  recommend.Strategy `json:"strategy"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (s Session) Clone() Session {
	s.Layout = s.Layout.Clone()
	return s
}

// LoadTemplate replaces all three groups with the named template.
func (s *Session) LoadTemplate(c *template.Catalog, name string) {
	s.Layout = c.Load(name)
	if c.Has(name) {
		s.Template = name
	} else {
		s.Template = template.None
	}
}

func (s *Session) AddRow(role fan.Role, rec fan.Record) error {
	return s.Layout.SetGroup(role, append(s.Layout.Group(role), rec))
}

func (s *Session) EditRow(role fan.Role, index int, rec fan.Record) error {
	rows := s.Layout.Group(role)
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%s row %d: %w", role, index, ErrRowNotFound)
	}
	rows[index] = rec
	return nil
}

func (s *Session) DeleteRow(role fan.Role, index int) error {
	rows := s.Layout.Group(role)
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%s row %d: %w", role, index, ErrRowNotFound)
	}
	out := make([]fan.Record, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	out = append(out, rows[index+1:]...)
	return s.Layout.SetGroup(role, out)
}

// SetVolume applies an edit made in either unit.
func (s *Session) SetVolume(e volume.Edit) error {
	v, err := e.Apply()
	if err != nil {
		return err
	}
	s.Volume = v
	return nil
}

func (s Session) Summary() summary.Summary {
	return summary.Calculate(summary.Input{Layout: s.Layout, Volume: s.Volume})
}

func (s Session) Recommendation() (recommend.Result, error) {
	return recommend.Advise(recommend.Input{Strategy: s.Strategy, Summary: s.Summary()})
}
