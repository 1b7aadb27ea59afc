package materials

import "time"

// PriceDiff — результат сверки присланного прайс-листа с сохранённым.
type PriceDiff struct {
	ToAdd    []PriceInput
	ToUpdate []PriceInput
	ToDelete []int64
}

func (d PriceDiff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToUpdate) == 0 && len(d.ToDelete) == 0
}

// DiffPrices сверяет присланный список с сохранённым: строки без id — новые,
// сохранённые строки, которых нет в присланном списке, — удалённые, строки с
// изменившейся ценой или датой — обновлённые. Нетронутые строки сохраняют id
// и в результат не попадают.
func DiffPrices(existing []Price, submitted []PriceInput) PriceDiff {
	var d PriceDiff

	byID := make(map[int64]Price, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}

	seen := make(map[int64]bool, len(submitted))
	for _, in := range submitted {
		if in.ID == 0 {
			d.ToAdd = append(d.ToAdd, in)
			continue
		}
		old, ok := byID[in.ID]
		if !ok {
			// id из чужого/устаревшего списка — игнорируем
			continue
		}
		seen[in.ID] = true
		if old.Price != in.Price || !sameDay(old.Date, in.Date) {
			d.ToUpdate = append(d.ToUpdate, in)
		}
	}

	for _, p := range existing {
		if !seen[p.ID] {
			d.ToDelete = append(d.ToDelete, p.ID)
		}
	}
	return d
}

// DefaultPrice — цена по умолчанию: самая поздняя по дате, при равных датах
// побеждает добавленная последней (больший id).
func DefaultPrice(history []Price) (Price, bool) {
	if len(history) == 0 {
		return Price{}, false
	}
	best := history[0]
	for _, p := range history[1:] {
		if p.Date.After(best.Date) || (sameDay(p.Date, best.Date) && p.ID > best.ID) {
			best = p
		}
	}
	return best, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
