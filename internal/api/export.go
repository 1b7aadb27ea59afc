package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Spok95/bom-costing/internal/domain/costing"
	"github.com/Spok95/bom-costing/internal/report"
)

// productCostSheet выгружает расчёт стоимости изделия в Excel.
// Цены — по умолчанию (последние), наценка — из query-параметра markup.
func (a *API) productCostSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}

	markup := 0.0
	if s := r.URL.Query().Get("markup"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			a.writeError(w, http.StatusBadRequest, "bad markup")
			return
		}
		markup = v
	}

	d, err := a.products.Details(r.Context(), id)
	if err != nil {
		a.internalError(w, "cost sheet", err)
		return
	}
	if d == nil {
		a.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	lines := make([]costing.Line, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, costing.Line{UnitPrice: l.DefaultPrice, Quantity: l.Quantity})
	}
	expenses := make([]float64, 0, len(d.Expenses))
	for _, e := range d.Expenses {
		expenses = append(expenses, e.Value)
	}
	b := costing.Compute(lines, expenses, markup)

	f, err := report.CostSheet(d, b, markup)
	if err != nil {
		a.internalError(w, "cost sheet", err)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=costsheet_%d.xlsx", id))
	if err := f.Write(w); err != nil {
		a.log.Error("cost sheet write", "err", err)
	}
}
