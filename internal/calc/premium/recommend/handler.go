package recommend

import (
	"net/http"

	json "github.com/goccy/go-json"

	"Airflow/internal/calc/summary"
	"Airflow/internal/httpjson"
)

type Handler struct{}

type Request struct {
	Strategy string        `json:"strategy"`
	Input    summary.Input `json:"input"`
}

func (h *Handler) Advise(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	st, err := ParseStrategy(req.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Advise(Input{Strategy: st, Summary: summary.Calculate(req.Input)})
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
