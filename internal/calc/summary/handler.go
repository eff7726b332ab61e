package summary

import (
	"net/http"

	json "github.com/goccy/go-json"

	"Airflow/internal/httpjson"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	httpjson.Write(w, http.StatusOK, Calculate(input))
}
