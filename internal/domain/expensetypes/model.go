package expensetypes

// ExpenseType — номенклатура видов прочих расходов.
type ExpenseType struct {
	ID   int64
	Name string
}
