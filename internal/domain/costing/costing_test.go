package costing

import "testing"

func TestCompute(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		expenses []float64
		markup   float64
		want     Breakdown
	}{
		{
			name:     "materials plus expense plus markup",
			lines:    []Line{{UnitPrice: 12, Quantity: 2}},
			expenses: []float64{5},
			markup:   10,
			want:     Breakdown{MaterialCost: 24, TotalCost: 29, SalePrice: 39},
		},
		{
			name: "line without price contributes zero",
			lines: []Line{
				{UnitPrice: 0, Quantity: 3},
				{UnitPrice: 2.5, Quantity: 4},
			},
			want: Breakdown{MaterialCost: 10, TotalCost: 10, SalePrice: 10},
		},
		{
			name:   "empty product is just markup",
			markup: 7,
			want:   Breakdown{SalePrice: 7},
		},
		{
			name:     "expenses only",
			expenses: []float64{1.5, 2.5},
			want:     Breakdown{MaterialCost: 0, TotalCost: 4, SalePrice: 4},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.lines, tc.expenses, tc.markup)
			if got != tc.want {
				t.Fatalf("Compute() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{31.9, 31.9},
		{0.001, 0},
		{10, 10},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
