package products

import "time"

type Product struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type BOMLine struct {
	ID         int64
	ProductID  int64
	MaterialID int64
	Quantity   float64
}

type Expense struct {
	ID            int64
	ProductID     int64
	ExpenseTypeID int64
	Value         float64
}

type BOMLineInput struct {
	MaterialID int64
	Quantity   float64
}

type ExpenseInput struct {
	ExpenseTypeID int64
	Value         float64
}

// DetailLine — строка спецификации с подставленной ценой по умолчанию
// (самая поздняя точка истории; ноль, если истории нет).
type DetailLine struct {
	ID             int64
	MaterialID     int64
	MaterialName   string
	Unit           string
	Quantity       float64
	DefaultPriceID int64
	DefaultPrice   float64
}

type DetailExpense struct {
	ID            int64
	ExpenseTypeID int64
	ExpenseType   string
	Value         float64
}

type Details struct {
	Product  Product
	Lines    []DetailLine
	Expenses []DetailExpense
}

// Usage — применение материала в изделии, количество просуммировано
// по всем строкам спецификации.
type Usage struct {
	ProductID int64
	Name      string
	Quantity  float64
}
