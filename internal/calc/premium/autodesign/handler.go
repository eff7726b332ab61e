package autodesign

import (
	"net/http"

	json "github.com/goccy/go-json"

	"Airflow/internal/httpjson"
)

type Handler struct{}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	var input BalanceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Balance(input)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
