package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type expenseTypeDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (a *API) listExpenseTypes(w http.ResponseWriter, r *http.Request) {
	list, err := a.expenseTypes.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.internalError(w, "list expense types", err)
		return
	}
	out := make([]expenseTypeDTO, 0, len(list))
	for _, e := range list {
		out = append(out, expenseTypeDTO{ID: e.ID, Name: e.Name})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) createExpenseType(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	e, err := a.expenseTypes.Create(r.Context(), req.Name)
	if err != nil {
		a.internalError(w, "create expense type", err)
		return
	}
	a.writeJSON(w, http.StatusCreated, expenseTypeDTO{ID: e.ID, Name: e.Name})
}
