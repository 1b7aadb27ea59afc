package report

import (
	"testing"

	"github.com/Spok95/bom-costing/internal/domain/costing"
	"github.com/Spok95/bom-costing/internal/domain/products"
)

func TestCostSheet(t *testing.T) {
	d := &products.Details{
		Product: products.Product{ID: 1, Name: "Стол", Description: "дъбов"},
		Lines: []products.DetailLine{
			{ID: 1, MaterialID: 3, MaterialName: "Дъб", Unit: "kg", Quantity: 2, DefaultPriceID: 5, DefaultPrice: 12},
		},
		Expenses: []products.DetailExpense{
			{ID: 1, ExpenseTypeID: 2, ExpenseType: "Труд", Value: 5},
		},
	}
	b := costing.Compute(
		[]costing.Line{{UnitPrice: 12, Quantity: 2}},
		[]float64{5},
		10,
	)

	f, err := CostSheet(d, b, 10)
	if err != nil {
		t.Fatalf("CostSheet: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	checks := map[string]string{
		"B1": "Стол",
		"A4": "material_id",
		"B5": "Дъб",
		"F5": "24", // 12 x 2
		"A7": "expense_type",
		"B8": "5",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}

	// итоги в хвосте листа
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	last := rows[len(rows)-1]
	if last[0] != "Отпускная цена" || last[1] != "39" {
		t.Fatalf("sale price row = %v, want [Отпускная цена 39]", last)
	}
}
