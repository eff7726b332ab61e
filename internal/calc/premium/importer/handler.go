package importer

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/volume"
	"Airflow/internal/httpjson"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

type ImportResult struct {
	Workbook
	Summary summary.Summary `json:"summary"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "File too big", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	vol, err := formVolume(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	wb, err := Read(f)
	if err != nil {
		http.Error(w, "Invalid workbook: "+err.Error(), http.StatusBadRequest)
		return
	}

	httpjson.Write(w, http.StatusOK, ImportResult{
		Workbook: wb,
		Summary:  summary.Calculate(summary.Input{Layout: wb.Layout, Volume: vol}),
	})
}

func formVolume(r *http.Request) (volume.Volume, error) {
	liters, err := formFloat(r, "liters")
	if err != nil {
		return volume.Volume{}, err
	}
	m3, err := formFloat(r, "m3")
	if err != nil {
		return volume.Volume{}, err
	}
	if liters == nil && m3 == nil {
		return volume.Volume{}, nil
	}
	return volume.Edit{Liters: liters, M3: m3}.Apply()
}

// formFloat returns nil for an absent field and rejects NaN and infinities.
func formFloat(r *http.Request, field string) (*float64, error) {
	s := strings.TrimSpace(r.FormValue(field))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !fan.Finite(v) {
		return nil, &volumeError{field: field, value: s}
	}
	return &v, nil
}

type volumeError struct {
	field, value string
}

func (e *volumeError) Error() string {
	return "invalid " + e.field + " " + strconv.Quote(e.value)
}
