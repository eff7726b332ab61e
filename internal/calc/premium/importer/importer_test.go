package importer

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/pressure"
	"Airflow/internal/calc/template"
)

func singleSheet(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestExportReadRoundTrip(t *testing.T) {
	cat, err := template.Default()
	require.NoError(t, err)
	want := cat.Load("Overclocked Workstation")

	f, err := Export(want)
	require.NoError(t, err)
	assert.Equal(t, []string{"Intake", "Exhaust", "Hardware"}, f.GetSheetList())

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	g, err := excelize.OpenReader(buf)
	require.NoError(t, err)

	wb, err := Read(g)
	require.NoError(t, err)
	assert.Empty(t, wb.Errors)
	assert.Equal(t, want.Intake, wb.Layout.Intake)
	assert.Equal(t, want.Exhaust, wb.Layout.Exhaust)
	assert.Equal(t, want.Hardware, wb.Layout.Hardware)
}

func TestReadPositional(t *testing.T) {
	f := singleSheet(t, [][]any{
		{"Fan Name", "Static Pressure (mmH2O)", "CFM", "Watts Low", "Watts High", "dB Low", "dB High"},
		{"Front", 1.5, 45, 5, 8, 20, 26},
		{"Top", 1.2, 50, 6, 9, 22, 28},
		{"Broken", 1.2, "n/a", 6, 9, 22, 28},
		{},
		{"Rear", 1.3, 48, 5, 7, 21, 27},
		{"GPU", 2.1, 30, 10, 18, 28, 36},
		{"CPU", 2.8, 35, 8, 12, 25, 32},
	})

	wb, err := Read(f)
	require.NoError(t, err)
	require.Len(t, wb.Errors, 1)
	assert.Equal(t, 4, wb.Errors[0].Row)
	assert.Contains(t, wb.Errors[0].Error, "CFM")
	assert.Equal(t, []string{"Front", "Top"}, names(wb.Layout.Intake))
	assert.Equal(t, []string{"Rear", "GPU"}, names(wb.Layout.Exhaust))
	assert.Equal(t, []string{"CPU"}, names(wb.Layout.Hardware))
}

func names(rows []fan.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestReadPositional_RejectedRowKeepsGroups(t *testing.T) {
	f := singleSheet(t, [][]any{
		{"Fan Name", "Static Pressure (mmH2O)", "CFM", "Watts Low", "Watts High", "dB Low", "dB High"},
		{"In1", 1, 40, 1, 2, 20, 25},
		{"In2", 1, 40, 1, 2, 20, 25},
		{"In3", 1, "NaN", 1, 2, 20, 25},
		{"Ex1", 1, 30, 1, 2, 20, 25},
		{"Ex2", 1, 30, 1, 2, 20, 25},
		{"HW1", 1, 20, 1, 2, 20, 25},
	})

	wb, err := Read(f)
	require.NoError(t, err)
	require.Len(t, wb.Errors, 1)
	assert.Equal(t, 4, wb.Errors[0].Row)
	assert.Equal(t, []string{"In1", "In2"}, names(wb.Layout.Intake))
	assert.Equal(t, []string{"Ex1", "Ex2"}, names(wb.Layout.Exhaust))
	assert.Equal(t, []string{"HW1"}, names(wb.Layout.Hardware))
}

func TestReadShortRow(t *testing.T) {
	f := singleSheet(t, [][]any{
		{"Fan Name"},
		{"Only a name"},
	})
	wb, err := Read(f)
	require.NoError(t, err)
	require.Len(t, wb.Errors, 1)
	assert.Equal(t, 0, wb.Layout.Len())
}

func upload(t *testing.T, f *excelize.File, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "fans.xlsx")
	require.NoError(t, err)
	_, err = f.WriteTo(part)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlerImport(t *testing.T) {
	cat, err := template.Default()
	require.NoError(t, err)
	f, err := Export(cat.Load("Mid-Tower Gaming PC"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, upload(t, f, map[string]string{"liters": "50"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 143.0, res.Summary.Intake.TotalCFM)
	assert.Equal(t, pressure.Positive, res.Summary.Pressure.Category)
	assert.True(t, res.Summary.Cycles.Computable)
	assert.Equal(t, 0.05, res.Summary.Volume.CubicMeters())
}

func TestHandlerImport_NotFiniteCell(t *testing.T) {
	f := singleSheet(t, [][]any{
		{"Fan Name", "Static Pressure (mmH2O)", "CFM", "Watts Low", "Watts High", "dB Low", "dB High"},
		{"Front", 1.5, "NaN", 5, 8, 20, 26},
		{"Top", 1.2, 50, 6, 9, 22, 28},
	})

	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, upload(t, f, map[string]string{"m3": "1"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Error, "CFM")
	assert.Equal(t, 50.0, res.Summary.Intake.TotalCFM)
}

func TestHandlerImport_BadRequests(t *testing.T) {
	f := excelize.NewFile()

	rec := httptest.NewRecorder()
	(&Handler{}).Import(rec, upload(t, f, map[string]string{"liters": "lots"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	(&Handler{}).Import(rec, upload(t, f, map[string]string{"liters": "1", "m3": "1"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, v := range []string{"NaN", "Inf", "1e400"} {
		rec = httptest.NewRecorder()
		(&Handler{}).Import(rec, upload(t, f, map[string]string{"m3": v}))
		assert.Equal(t, http.StatusBadRequest, rec.Code, v)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("plain"))
	req.Header.Set("Content-Type", "text/plain")
	(&Handler{}).Import(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
