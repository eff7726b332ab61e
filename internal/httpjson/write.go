package httpjson

import (
	"bytes"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
)

// Write encodes v before touching w, so a value that cannot be encoded
// (NaN or an infinite total) turns into a 422 instead of an empty 200.
func Write(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, "Result cannot be represented: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
