package report

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type Handler struct {
	Logger *slog.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, time.Now()); err != nil {
		if h.Logger != nil {
			h.Logger.Error("report generation failed", "error", err, "project", doc.Project)
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"airflow-report.pdf\"")
	w.Write(buf.Bytes())
}
