package materials

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDiffPricesUnchangedListIsNoop(t *testing.T) {
	existing := []Price{
		{ID: 1, MaterialID: 7, Price: 10, Date: day("2024-01-01")},
		{ID: 2, MaterialID: 7, Price: 12, Date: day("2024-06-01")},
	}
	submitted := []PriceInput{
		{ID: 1, Price: 10, Date: day("2024-01-01")},
		{ID: 2, Price: 12, Date: day("2024-06-01")},
	}

	d := DiffPrices(existing, submitted)
	if !d.Empty() {
		t.Fatalf("unchanged list must produce empty diff, got %+v", d)
	}
}

func TestDiffPricesSplitsAddUpdateDelete(t *testing.T) {
	existing := []Price{
		{ID: 1, Price: 10, Date: day("2024-01-01")},
		{ID: 2, Price: 12, Date: day("2024-06-01")},
		{ID: 3, Price: 14, Date: day("2024-07-01")},
	}
	// id 1 — изменилась цена, id 3 — дата, строка без id — новая
	submitted := []PriceInput{
		{ID: 1, Price: 11, Date: day("2024-01-01")},
		{ID: 3, Price: 14, Date: day("2024-07-15")},
		{Price: 9, Date: day("2024-08-01")},
	}

	d := DiffPrices(existing, submitted)

	if len(d.ToAdd) != 1 || d.ToAdd[0].Price != 9 {
		t.Fatalf("ToAdd = %+v, want one new row with price 9", d.ToAdd)
	}
	if len(d.ToUpdate) != 2 {
		t.Fatalf("ToUpdate = %+v, want ids 1 and 3", d.ToUpdate)
	}
	if d.ToUpdate[0].ID != 1 || d.ToUpdate[1].ID != 3 {
		t.Fatalf("ToUpdate ids = %d, %d, want 1, 3", d.ToUpdate[0].ID, d.ToUpdate[1].ID)
	}
	if len(d.ToDelete) != 1 || d.ToDelete[0] != 2 {
		t.Fatalf("ToDelete = %v, want [2]", d.ToDelete)
	}
}

func TestDiffPricesIgnoresForeignIDs(t *testing.T) {
	existing := []Price{{ID: 1, Price: 10, Date: day("2024-01-01")}}
	submitted := []PriceInput{
		{ID: 1, Price: 10, Date: day("2024-01-01")},
		{ID: 99, Price: 5, Date: day("2024-02-01")}, // чужой id — не добавляем и не обновляем
	}

	d := DiffPrices(existing, submitted)
	if !d.Empty() {
		t.Fatalf("foreign id must be ignored, got %+v", d)
	}
}

func TestDiffPricesEmptySubmittedDeletesAll(t *testing.T) {
	existing := []Price{
		{ID: 1, Price: 10, Date: day("2024-01-01")},
		{ID: 2, Price: 12, Date: day("2024-06-01")},
	}

	d := DiffPrices(existing, nil)
	if len(d.ToAdd) != 0 || len(d.ToUpdate) != 0 || len(d.ToDelete) != 2 {
		t.Fatalf("want delete-all diff, got %+v", d)
	}
}

func TestDefaultPricePicksLatestDate(t *testing.T) {
	history := []Price{
		{ID: 1, Price: 10, Date: day("2024-01-01")},
		{ID: 2, Price: 12, Date: day("2024-06-01")},
	}

	p, ok := DefaultPrice(history)
	if !ok || p.ID != 2 || p.Price != 12 {
		t.Fatalf("DefaultPrice = %+v ok=%v, want id 2 price 12", p, ok)
	}
}

func TestDefaultPriceTieBrokenByID(t *testing.T) {
	// две точки на одну дату — побеждает добавленная последней
	history := []Price{
		{ID: 5, Price: 10, Date: day("2024-06-01")},
		{ID: 8, Price: 11, Date: day("2024-06-01")},
		{ID: 2, Price: 9, Date: day("2024-05-01")},
	}

	p, ok := DefaultPrice(history)
	if !ok || p.ID != 8 {
		t.Fatalf("DefaultPrice = %+v ok=%v, want id 8", p, ok)
	}
}

func TestDefaultPriceEmptyHistory(t *testing.T) {
	if _, ok := DefaultPrice(nil); ok {
		t.Fatal("empty history must report no default price")
	}
}
