package units

type Unit struct {
	ID   int64
	Name string
}
