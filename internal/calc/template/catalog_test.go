package template

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Airflow/internal/calc/aggregate"
	"Airflow/internal/calc/fan"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefaultNames(t *testing.T) {
	c := mustDefault(t)
	assert.Equal(t, []string{
		"None",
		"Mid-Tower Gaming PC",
		"Overclocked Workstation",
		"Server Rack (3U Nodes)",
		"Server Room (6 Rack Rows)",
	}, c.Names())
}

func TestDefaultTemplates(t *testing.T) {
	c := mustDefault(t)

	tests := []struct {
		name                      string
		rows                      int
		intake, exhaust, hardware float64
	}{
		{"Mid-Tower Gaming PC", 5, 143, 65, 0},
		{"Overclocked Workstation", 6, 190, 95, 50},
		{"Server Rack (3U Nodes)", 5, 225, 80, 0},
		{"Server Room (6 Rack Rows)", 8, 1170, 300, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := c.Load(tt.name)
			assert.Equal(t, tt.rows, l.Len())
			assert.Equal(t, tt.intake, aggregate.Calculate(l.Intake).TotalCFM)
			assert.Equal(t, tt.exhaust, aggregate.Calculate(l.Exhaust).TotalCFM)
			assert.Equal(t, tt.hardware, aggregate.Calculate(l.Hardware).TotalCFM)
		})
	}
}

func TestGamingPCRows(t *testing.T) {
	l := mustDefault(t).Load("Mid-Tower Gaming PC")
	assert.Equal(t, fan.Record{Name: "GPU Cooling", StaticPressure: 2.1, CFM: 30, WattsLow: 10, WattsHigh: 18, DBLow: 28, DBHigh: 36}, l.Exhaust[0])
	assert.Equal(t, fan.Record{Name: "CPU Cooler", StaticPressure: 2.8, CFM: 35, WattsLow: 8, WattsHigh: 12, DBLow: 25, DBHigh: 32}, l.Exhaust[1])
	assert.Empty(t, l.Hardware)
}

func TestLoadUnknownIsEmpty(t *testing.T) {
	c := mustDefault(t)
	for _, name := range []string{"None", "Mainframe", ""} {
		l := c.Load(name)
		assert.Equal(t, 0, l.Len())
		assert.NotNil(t, l.Intake)
	}
	assert.False(t, c.Has("None"))
}

func TestLoadReturnsCopy(t *testing.T) {
	c := mustDefault(t)
	l := c.Load("Mid-Tower Gaming PC")
	l.Intake[0].CFM = 999
	assert.Equal(t, 45.0, c.Load("Mid-Tower Gaming PC").Intake[0].CFM)
}

func TestParseRoleTagged(t *testing.T) {
	c, err := Parse([]byte(`
templates:
  - name: Tagged
    fans:
      - {name: CPU, cfm: 40, role: hardware, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
      - {name: Front, cfm: 60, role: intake, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
      - {name: Rear, cfm: 50, role: exhaust, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
`))
	require.NoError(t, err)
	l := c.Load("Tagged")
	require.Len(t, l.Intake, 1)
	assert.Equal(t, "Front", l.Intake[0].Name)
	assert.Equal(t, "Rear", l.Exhaust[0].Name)
	assert.Equal(t, "CPU", l.Hardware[0].Name)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"mixed roles": `
templates:
  - name: Mixed
    fans:
      - {name: A, cfm: 1, role: intake, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
      - {name: B, cfm: 1, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
`,
		"duplicate": `
templates:
  - name: A
  - name: A
`,
		"reserved": `
templates:
  - name: none
`,
		"missing name": `
templates:
  - fans: []
`,
		"bad role": `
templates:
  - name: A
    fans:
      - {name: A, cfm: 1, role: ceiling, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
`,
		"bad yaml": `templates: [`,
		"missing field": `
templates:
  - name: A
    fans:
      - {name: A, static_pressure: 1, cfm: 1, watts_low: 1, watts_high: 2, db_high: 30}
`,
		"not finite": `
templates:
  - name: A
    fans:
      - {name: A, static_pressure: 1, cfm: .nan, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}
`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFieldIsFieldError(t *testing.T) {
	_, err := Parse([]byte(`
templates:
  - name: Partial
    fans:
      - {name: Front, static_pressure: 1, cfm: 40, watts_low: 1, watts_high: 2, db_high: 30}
`))
	var fe *fan.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "db_low", fe.Field)
	assert.Equal(t, "Front", fe.Record)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  - name: Tiny\n    fans:\n      - {name: Only, cfm: 12, static_pressure: 1, watts_low: 1, watts_high: 2, db_low: 20, db_high: 30}\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"None", "Tiny"}, c.Names())
	assert.Equal(t, 12.0, c.Load("Tiny").Intake[0].CFM)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	h := &Handler{Catalog: mustDefault(t)}
	r := mux.NewRouter()
	r.HandleFunc("/templates", h.List).Methods("GET")
	r.HandleFunc("/templates/{name}", h.Get).Methods("GET")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, "None", list["templates"][0])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/Server%20Rack%20(3U%20Nodes)", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Found)
	assert.Len(t, got.Layout.Intake, 3)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/Nope", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Found)
	assert.Equal(t, 0, got.Layout.Len())
}
