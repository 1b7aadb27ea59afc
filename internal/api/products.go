package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Spok95/bom-costing/internal/domain/costing"
	"github.com/Spok95/bom-costing/internal/domain/products"
)

type productDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type bomLineRequest struct {
	MaterialID int64   `json:"material_id"`
	Quantity   float64 `json:"quantity"`
}

type expenseLineRequest struct {
	ExpenseTypeID int64   `json:"expense_type_id"`
	Value         float64 `json:"value"`
}

type productRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	BOM         []bomLineRequest     `json:"bom"`
	Expenses    []expenseLineRequest `json:"expenses"`
}

type detailLineDTO struct {
	ID             int64      `json:"id"`
	MaterialID     int64      `json:"material_id"`
	Material       string     `json:"material"`
	Unit           string     `json:"unit"`
	Quantity       float64    `json:"quantity"`
	DefaultPriceID int64      `json:"default_price_id,omitempty"`
	DefaultPrice   float64    `json:"default_price"`
	Prices         []priceDTO `json:"prices"`
}

type detailExpenseDTO struct {
	ID            int64   `json:"id"`
	ExpenseTypeID int64   `json:"expense_type_id"`
	ExpenseType   string  `json:"expense_type"`
	Value         float64 `json:"value"`
}

type productDetailsDTO struct {
	productDTO
	Lines    []detailLineDTO    `json:"bom"`
	Expenses []detailExpenseDTO `json:"expenses"`
}

func toProductDTO(p *products.Product) productDTO {
	return productDTO{ID: p.ID, Name: p.Name, Description: p.Description}
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := a.products.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.internalError(w, "list products", err)
		return
	}
	out := make([]productDTO, 0, len(list))
	for i := range list {
		out = append(out, toProductDTO(&list[i]))
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if req.Name == "" {
		a.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	lines := make([]products.BOMLineInput, 0, len(req.BOM))
	for _, l := range req.BOM {
		if l.MaterialID <= 0 {
			a.writeError(w, http.StatusBadRequest, "bom: material_id is required")
			return
		}
		if l.Quantity <= 0 {
			a.writeError(w, http.StatusBadRequest, "bom: quantity must be > 0")
			return
		}
		lines = append(lines, products.BOMLineInput{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	expenses := make([]products.ExpenseInput, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		if e.ExpenseTypeID <= 0 {
			a.writeError(w, http.StatusBadRequest, "expenses: expense_type_id is required")
			return
		}
		if e.Value < 0 {
			a.writeError(w, http.StatusBadRequest, "expenses: value must be >= 0")
			return
		}
		expenses = append(expenses, products.ExpenseInput{ExpenseTypeID: e.ExpenseTypeID, Value: e.Value})
	}

	p, err := a.products.Create(r.Context(), req.Name, req.Description, lines, expenses)
	if err != nil {
		if errors.Is(err, products.ErrRefNotFound) {
			a.writeError(w, http.StatusNotFound, "referenced material or expense type not found")
			return
		}
		a.internalError(w, "create product", err)
		return
	}
	a.writeJSON(w, http.StatusCreated, toProductDTO(p))
}

func (a *API) productDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	d, err := a.products.Details(r.Context(), id)
	if err != nil {
		a.internalError(w, "product details", err)
		return
	}
	if d == nil {
		a.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	out := productDetailsDTO{
		productDTO: toProductDTO(&d.Product),
		Lines:      make([]detailLineDTO, 0, len(d.Lines)),
		Expenses:   make([]detailExpenseDTO, 0, len(d.Expenses)),
	}

	// история цен — один раз на материал, даже если он встречается
	// в нескольких строках
	histories := map[int64][]priceDTO{}
	for _, l := range d.Lines {
		if _, ok := histories[l.MaterialID]; !ok {
			h, err := a.materials.PriceHistory(r.Context(), l.MaterialID)
			if err != nil {
				a.internalError(w, "product details", err)
				return
			}
			histories[l.MaterialID] = toPriceDTOs(h)
		}
		out.Lines = append(out.Lines, detailLineDTO{
			ID:             l.ID,
			MaterialID:     l.MaterialID,
			Material:       l.MaterialName,
			Unit:           l.Unit,
			Quantity:       l.Quantity,
			DefaultPriceID: l.DefaultPriceID,
			DefaultPrice:   costing.Round2(l.DefaultPrice),
			Prices:         histories[l.MaterialID],
		})
	}
	for _, e := range d.Expenses {
		out.Expenses = append(out.Expenses, detailExpenseDTO{
			ID:            e.ID,
			ExpenseTypeID: e.ExpenseTypeID,
			ExpenseType:   e.ExpenseType,
			Value:         e.Value,
		})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	found, err := a.products.Delete(r.Context(), id)
	if err != nil {
		a.internalError(w, "delete product", err)
		return
	}
	if !found {
		a.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
