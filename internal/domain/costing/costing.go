package costing

import "math"

// Line — строка спецификации с уже выбранной ценой материала.
// UnitPrice == 0, если у материала нет истории цен или точка не выбрана.
type Line struct {
	UnitPrice float64
	Quantity  float64
}

type Breakdown struct {
	MaterialCost float64
	TotalCost    float64
	SalePrice    float64
}

// Compute считает себестоимость и отпускную цену. Наценка — абсолютная
// прибавка к себестоимости (не процент). Промежуточные значения не
// округляются, только Round2 на выводе.
func Compute(lines []Line, expenses []float64, markup float64) Breakdown {
	var b Breakdown
	for _, l := range lines {
		b.MaterialCost += l.UnitPrice * l.Quantity
	}
	for _, v := range expenses {
		b.TotalCost += v
	}
	b.TotalCost += b.MaterialCost
	b.SalePrice = b.TotalCost + markup
	return b
}

// Round2 — округление до сотых. Применяется только на границе вывода
// (JSON-ответ, ячейка отчёта), чтобы ошибка не накапливалась при
// повторных пересчётах.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
