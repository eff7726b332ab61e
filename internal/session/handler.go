package session

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"Airflow/internal/auth"
	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/template"
	"Airflow/internal/calc/volume"
	"Airflow/internal/httpjson"
	"Airflow/internal/notify"
)

type Handler struct {
	Store     *Store
	Catalog   *template.Catalog
	Publisher notify.Publisher
	Logger    *slog.Logger
}

// Response is returned by every endpoint that reads or changes a session.
type Response struct {
	Session Session         `json:"session"`
	Summary summary.Summary `json:"summary"`
}

type SummaryResponse struct {
	Summary        summary.Summary  `json:"summary"`
	Recommendation recommend.Result `json:"recommendation"`
}

type templateRequest struct {
	Name string `json:"name"`
}

type strategyRequest struct {
	Strategy string `json:"strategy"`
}

// Register mounts the session routes on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/sessions", h.Create).Methods("POST")
	r.HandleFunc("/sessions", h.List).Methods("GET")
	r.HandleFunc("/sessions/{id}", h.Get).Methods("GET")
	r.HandleFunc("/sessions/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/sessions/{id}/template", h.LoadTemplate).Methods("POST")
	r.HandleFunc("/sessions/{id}/volume", h.SetVolume).Methods("PUT")
	r.HandleFunc("/sessions/{id}/strategy", h.SetStrategy).Methods("PUT")
	r.HandleFunc("/sessions/{id}/summary", h.Summary).Methods("GET")
	r.HandleFunc("/sessions/{id}/{role}/rows", h.AddRow).Methods("POST")
	r.HandleFunc("/sessions/{id}/{role}/rows/{index:[0-9]+}", h.EditRow).Methods("PUT")
	r.HandleFunc("/sessions/{id}/{role}/rows/{index:[0-9]+}", h.DeleteRow).Methods("DELETE")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s := h.Store.Create(owner)
	h.publish(s)
	httpjson.Write(w, http.StatusCreated, respond(s))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string][]Session{"sessions": h.Store.List(owner)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s, err := h.Store.Get(owner, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, respond(s))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.Store.Delete(owner, id); err != nil {
		h.fail(w, err)
		return
	}
	if h.Publisher != nil {
		if err := h.Publisher.ClearSummary(id); err != nil && h.Logger != nil {
			h.Logger.Warn("summary clear failed", "session", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s, err := h.Store.Get(owner, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	rec, err := s.Recommendation()
	if err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, SummaryResponse{Summary: s.Summary(), Recommendation: rec})
}

func (h *Handler) LoadTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error {
		s.LoadTemplate(h.Catalog, req.Name)
		return nil
	})
}

func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	role, err := fan.ParseRole(mux.Vars(r)["role"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var rec fan.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid fan record: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error { return s.AddRow(role, rec) })
}

func (h *Handler) EditRow(w http.ResponseWriter, r *http.Request) {
	role, index, err := rowRef(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var rec fan.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid fan record: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error { return s.EditRow(role, index, rec) })
}

func (h *Handler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	role, index, err := rowRef(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error { return s.DeleteRow(role, index) })
}

func (h *Handler) SetVolume(w http.ResponseWriter, r *http.Request) {
	var e volume.Edit
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if _, err := e.Apply(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error { return s.SetVolume(e) })
}

func (h *Handler) SetStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	st, err := recommend.ParseStrategy(req.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.update(w, r, func(s *Session) error {
		s.Strategy = st
		return nil
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, fn func(*Session) error) {
	owner, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	s, err := h.Store.Update(owner, mux.Vars(r)["id"], fn)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.publish(s)
	httpjson.Write(w, http.StatusOK, respond(s))
}

func (h *Handler) publish(s Session) {
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.PublishSummary(s.ID, s.Summary()); err != nil && h.Logger != nil {
		h.Logger.Warn("summary publish failed", "session", s.ID, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRowNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		if h.Logger != nil {
			h.Logger.Error("session request failed", "error", err)
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func rowRef(r *http.Request) (fan.Role, int, error) {
	vars := mux.Vars(r)
	role, err := fan.ParseRole(vars["role"])
	if err != nil {
		return "", 0, err
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		return "", 0, err
	}
	return role, index, nil
}

func respond(s Session) Response {
	return Response{Session: s, Summary: s.Summary()}
}
