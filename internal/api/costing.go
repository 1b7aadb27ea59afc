package api

import (
	"encoding/json"
	"net/http"

	"github.com/Spok95/bom-costing/internal/domain/costing"
)

type costLineRequest struct {
	PriceID  int64   `json:"price_id,omitempty"`
	Quantity float64 `json:"quantity"`
}

type costRequest struct {
	Lines    []costLineRequest    `json:"lines"`
	Expenses []expenseLineRequest `json:"expenses"`
	Markup   float64              `json:"markup"`
}

type costResponse struct {
	MaterialCost float64 `json:"material_cost"`
	TotalCost    float64 `json:"total_cost"`
	SalePrice    float64 `json:"sale_price"`
}

// computeCost считает себестоимость по выбранным точкам цен. Строка без
// price_id (или с id удалённой точки) участвует с нулевой ценой.
func (a *API) computeCost(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}

	ids := make([]int64, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			a.writeError(w, http.StatusBadRequest, "lines: quantity must be > 0")
			return
		}
		if l.PriceID > 0 {
			ids = append(ids, l.PriceID)
		}
	}

	prices, err := a.materials.PricesByIDs(r.Context(), ids)
	if err != nil {
		a.internalError(w, "compute cost", err)
		return
	}

	lines := make([]costing.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, costing.Line{UnitPrice: prices[l.PriceID], Quantity: l.Quantity})
	}
	expenses := make([]float64, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		if e.Value < 0 {
			a.writeError(w, http.StatusBadRequest, "expenses: value must be >= 0")
			return
		}
		expenses = append(expenses, e.Value)
	}

	b := costing.Compute(lines, expenses, req.Markup)
	a.writeJSON(w, http.StatusOK, costResponse{
		MaterialCost: costing.Round2(b.MaterialCost),
		TotalCost:    costing.Round2(b.TotalCost),
		SalePrice:    costing.Round2(b.SalePrice),
	})
}
