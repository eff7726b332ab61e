package template

import (
	"net/http"

	"github.com/gorilla/mux"

	"Airflow/internal/calc/fan"
	"Airflow/internal/httpjson"
)

type Handler struct {
	Catalog *Catalog
}

type Response struct {
	Name   string     `json:"name"`
	Found  bool       `json:"found"`
	Layout fan.Layout `json:"layout"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string][]string{"templates": h.Catalog.Names()})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	httpjson.Write(w, http.StatusOK, Response{
		Name:   name,
		Found:  h.Catalog.Has(name),
		Layout: h.Catalog.Load(name),
	})
}
