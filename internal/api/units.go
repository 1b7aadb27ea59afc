package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type unitDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (a *API) listUnits(w http.ResponseWriter, r *http.Request) {
	list, err := a.units.List(r.Context())
	if err != nil {
		a.internalError(w, "list units", err)
		return
	}
	out := make([]unitDTO, 0, len(list))
	for _, u := range list {
		out = append(out, unitDTO{ID: u.ID, Name: u.Name})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) createUnit(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	u, err := a.units.Create(r.Context(), req.Name)
	if err != nil {
		a.internalError(w, "create unit", err)
		return
	}
	a.writeJSON(w, http.StatusCreated, unitDTO{ID: u.ID, Name: u.Name})
}
