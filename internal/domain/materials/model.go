package materials

import "time"

type Material struct {
	ID          int64
	Name        string
	Description string
	UnitID      int64
	Unit        string // имя единицы (для отображения)
	CreatedAt   time.Time
}

// Price — одна точка истории цен материала. Точек может быть сколько
// угодно, в том числе несколько на одну дату.
type Price struct {
	ID         int64
	MaterialID int64
	Price      float64
	Date       time.Time
}

// PriceInput — строка прайс-листа, пришедшая с формы.
// ID == 0 означает новую строку.
type PriceInput struct {
	ID    int64
	Price float64
	Date  time.Time
}
