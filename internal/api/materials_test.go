package api

import "testing"

func TestParsePriceList(t *testing.T) {
	in := []priceDTO{
		{ID: 3, Price: 10.5, Date: "2024-01-01"},
		{Price: 12, Date: "2024-06-01"},
	}

	out, err := parsePriceList(in)
	if err != nil {
		t.Fatalf("parsePriceList: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != 3 || out[0].Price != 10.5 {
		t.Fatalf("out[0] = %+v", out[0])
	}
	if out[1].ID != 0 {
		t.Fatalf("new row must keep zero id, got %d", out[1].ID)
	}
	if got := out[1].Date.Format(dateLayout); got != "2024-06-01" {
		t.Fatalf("date = %s, want 2024-06-01", got)
	}
}

func TestParsePriceListRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		in   []priceDTO
	}{
		{"negative price", []priceDTO{{Price: -1, Date: "2024-01-01"}}},
		{"bad date", []priceDTO{{Price: 1, Date: "01.06.2024"}}},
		{"empty date", []priceDTO{{Price: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parsePriceList(tc.in); err == nil {
				t.Fatal("want error")
			}
		})
	}
}
