package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Spok95/bom-costing/internal/domain/materials"
)

type priceDTO struct {
	ID    int64   `json:"id,omitempty"`
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

type materialDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitID      int64  `json:"unit_id"`
	Unit        string `json:"unit"`
}

type materialDetailsDTO struct {
	materialDTO
	InUse  bool       `json:"in_use"`
	Prices []priceDTO `json:"prices"`
}

type materialRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UnitID      int64      `json:"unit_id"`
	Prices      []priceDTO `json:"prices"`
}

func toMaterialDTO(m *materials.Material) materialDTO {
	return materialDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		UnitID:      m.UnitID,
		Unit:        m.Unit,
	}
}

func toPriceDTOs(history []materials.Price) []priceDTO {
	out := make([]priceDTO, 0, len(history))
	for _, p := range history {
		out = append(out, priceDTO{ID: p.ID, Price: p.Price, Date: p.Date.Format(dateLayout)})
	}
	return out
}

// parsePriceList проверяет и разбирает прайс-лист из запроса.
func parsePriceList(in []priceDTO) ([]materials.PriceInput, error) {
	out := make([]materials.PriceInput, 0, len(in))
	for i, p := range in {
		if p.Price < 0 {
			return nil, fmt.Errorf("prices[%d]: price must be >= 0", i)
		}
		d, err := parseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("prices[%d]: bad date %q", i, p.Date)
		}
		out = append(out, materials.PriceInput{ID: p.ID, Price: p.Price, Date: d})
	}
	return out, nil
}

func (a *API) listMaterials(w http.ResponseWriter, r *http.Request) {
	list, err := a.materials.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.internalError(w, "list materials", err)
		return
	}
	out := make([]materialDTO, 0, len(list))
	for i := range list {
		out = append(out, toMaterialDTO(&list[i]))
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if req.Name == "" || req.UnitID <= 0 {
		a.writeError(w, http.StatusBadRequest, "name and unit_id are required")
		return
	}
	prices, err := parsePriceList(req.Prices)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// при создании все строки прайс-листа новые
	for i := range prices {
		prices[i].ID = 0
	}

	m, err := a.materials.Create(r.Context(), req.Name, req.Description, req.UnitID, prices)
	if err != nil {
		if errors.Is(err, materials.ErrUnitNotFound) {
			a.writeError(w, http.StatusNotFound, "unit not found")
			return
		}
		a.internalError(w, "create material", err)
		return
	}
	a.respondMaterialDetails(w, r, http.StatusCreated, m)
}

func (a *API) getMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	m, err := a.materials.GetByID(r.Context(), id)
	if err != nil {
		a.internalError(w, "get material", err)
		return
	}
	if m == nil {
		a.writeError(w, http.StatusNotFound, "material not found")
		return
	}
	a.respondMaterialDetails(w, r, http.StatusOK, m)
}

func (a *API) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	if req.Name == "" || req.UnitID <= 0 {
		a.writeError(w, http.StatusBadRequest, "name and unit_id are required")
		return
	}
	prices, err := parsePriceList(req.Prices)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := a.materials.Update(r.Context(), id, req.Name, req.Description, req.UnitID, prices)
	if err != nil {
		if errors.Is(err, materials.ErrUnitNotFound) {
			a.writeError(w, http.StatusNotFound, "unit not found")
			return
		}
		a.internalError(w, "update material", err)
		return
	}
	if m == nil {
		a.writeError(w, http.StatusNotFound, "material not found")
		return
	}
	a.respondMaterialDetails(w, r, http.StatusOK, m)
}

func (a *API) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	found, err := a.materials.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, materials.ErrInUse) {
			a.writeError(w, http.StatusConflict, "material is in use")
			return
		}
		a.internalError(w, "delete material", err)
		return
	}
	if !found {
		a.writeError(w, http.StatusNotFound, "material not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type usageDTO struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
}

func (a *API) materialUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.writeError(w, http.StatusBadRequest, "bad id")
		return
	}
	m, err := a.materials.GetByID(r.Context(), id)
	if err != nil {
		a.internalError(w, "material usage", err)
		return
	}
	if m == nil {
		a.writeError(w, http.StatusNotFound, "material not found")
		return
	}
	usage, err := a.products.UsageOfMaterial(r.Context(), id)
	if err != nil {
		a.internalError(w, "material usage", err)
		return
	}
	out := make([]usageDTO, 0, len(usage))
	for _, u := range usage {
		out = append(out, usageDTO{ProductID: u.ProductID, Name: u.Name, Quantity: u.Quantity})
	}
	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) respondMaterialDetails(w http.ResponseWriter, r *http.Request, status int, m *materials.Material) {
	history, err := a.materials.PriceHistory(r.Context(), m.ID)
	if err != nil {
		a.internalError(w, "material price history", err)
		return
	}
	used, err := a.materials.InUse(r.Context(), m.ID)
	if err != nil {
		a.internalError(w, "material in-use check", err)
		return
	}
	a.writeJSON(w, status, materialDetailsDTO{
		materialDTO: toMaterialDTO(m),
		InUse:       used,
		Prices:      toPriceDTOs(history),
	})
}
