package report

import (
	"github.com/Spok95/bom-costing/internal/domain/costing"
	"github.com/Spok95/bom-costing/internal/domain/products"
	"github.com/xuri/excelize/v2"
)

// CostSheet формирует книгу с расчётом стоимости изделия по ценам по
// умолчанию. Округление — только в ячейках.
func CostSheet(d *products.Details, b costing.Breakdown, markup float64) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	rows := [][]interface{}{
		{"Изделие", d.Product.Name},
		{"Описание", d.Product.Description},
		{},
		{"material_id", "material_name", "unit", "quantity", "price", "line_cost"},
	}
	for _, l := range d.Lines {
		rows = append(rows, []interface{}{
			l.MaterialID,
			l.MaterialName,
			l.Unit,
			l.Quantity,
			costing.Round2(l.DefaultPrice),
			costing.Round2(l.DefaultPrice * l.Quantity),
		})
	}

	rows = append(rows, []interface{}{}, []interface{}{"expense_type", "value"})
	for _, e := range d.Expenses {
		rows = append(rows, []interface{}{e.ExpenseType, costing.Round2(e.Value)})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Материалы", costing.Round2(b.MaterialCost)},
		[]interface{}{"Себестоимость", costing.Round2(b.TotalCost)},
		[]interface{}{"Наценка", costing.Round2(markup)},
		[]interface{}{"Отпускная цена", costing.Round2(b.SalePrice)},
	)

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}
