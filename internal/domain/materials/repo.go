package materials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInUse — материал используется хотя бы одной строкой спецификации,
// удалять его нельзя.
var ErrInUse = errors.New("material is in use")

// ErrUnitNotFound — указанной единицы измерения не существует.
var ErrUnitNotFound = errors.New("unit not found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, description string, unitID int64, prices []PriceInput) (*Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}
	for _, p := range prices {
		if p.Price < 0 {
			return nil, fmt.Errorf("price must be >= 0")
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO materials (name, description, unit_id)
		VALUES ($1,$2,$3)
		RETURNING id
	`, name, description, unitID)
	var id int64
	if err := row.Scan(&id); err != nil {
		if isFKViolation(err) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	for _, p := range prices {
		if _, err := tx.Exec(ctx, `
			INSERT INTO material_prices (material_id, price, price_date)
			VALUES ($1,$2,$3)
		`, id, p.Price, p.Date); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT m.id, m.name, m.description, m.unit_id, u.name, m.created_at
		FROM materials m
		JOIN units u ON u.id = m.unit_id
		WHERE m.id = $1
	`, id)
	var m Material
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.UnitID, &m.Unit, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) List(ctx context.Context) ([]Material, error) {
	return r.query(ctx, `
		SELECT m.id, m.name, m.description, m.unit_id, u.name, m.created_at
		FROM materials m
		JOIN units u ON u.id = m.unit_id
		ORDER BY m.id
	`)
}

// Search ищет по подстроке id, имени или описания, без учёта регистра.
// Пустой запрос — полный список в порядке добавления.
func (r *Repo) Search(ctx context.Context, term string) ([]Material, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	like := "%" + strings.ToLower(term) + "%"
	return r.query(ctx, `
		SELECT m.id, m.name, m.description, m.unit_id, u.name, m.created_at
		FROM materials m
		JOIN units u ON u.id = m.unit_id
		WHERE m.id::text LIKE $1 OR LOWER(m.name) LIKE $1 OR LOWER(m.description) LIKE $1
		ORDER BY m.id
	`, like)
}

// InUse — есть ли хоть одна строка спецификации с этим материалом.
// Проверяется на момент вызова, без кеширования.
func (r *Repo) InUse(ctx context.Context, id int64) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bom_lines WHERE material_id = $1)
	`, id)
	var used bool
	if err := row.Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}

// Update сохраняет материал. Если материал используется в спецификациях,
// изменения имени, описания и единицы молча отбрасываются — применяется
// только сверка прайс-листа. Возвращает (nil, nil), если материала нет.
func (r *Repo) Update(ctx context.Context, id int64, name, description string, unitID int64, prices []PriceInput) (*Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}
	for _, p := range prices {
		if p.Price < 0 {
			return nil, fmt.Errorf("price must be >= 0")
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	// Свежая проверка использования — внутри той же транзакции,
	// состав спецификаций мог поменяться после загрузки формы.
	var used bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bom_lines WHERE material_id = $1)
	`, id).Scan(&used); err != nil {
		return nil, err
	}

	if !used {
		if _, err := tx.Exec(ctx, `
			UPDATE materials SET name=$2, description=$3, unit_id=$4 WHERE id=$1
		`, id, name, description, unitID); err != nil {
			if isFKViolation(err) {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}
	}

	existing, err := priceHistoryTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	diff := DiffPrices(existing, prices)

	for _, p := range diff.ToAdd {
		if _, err := tx.Exec(ctx, `
			INSERT INTO material_prices (material_id, price, price_date)
			VALUES ($1,$2,$3)
		`, id, p.Price, p.Date); err != nil {
			return nil, err
		}
	}
	for _, p := range diff.ToUpdate {
		if _, err := tx.Exec(ctx, `
			UPDATE material_prices SET price=$3, price_date=$4
			WHERE id=$1 AND material_id=$2
		`, p.ID, id, p.Price, p.Date); err != nil {
			return nil, err
		}
	}
	if len(diff.ToDelete) > 0 {
		if _, err := tx.Exec(ctx, `
			DELETE FROM material_prices WHERE material_id=$1 AND id = ANY($2)
		`, id, diff.ToDelete); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete удаляет материал вместе с историей цен. Возвращает (false, nil),
// если материала нет, и ErrInUse, если он используется в спецификациях.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	var used bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bom_lines WHERE material_id = $1)
	`, id).Scan(&used); err != nil {
		return false, err
	}
	if used {
		return false, ErrInUse
	}

	if _, err := tx.Exec(ctx, `DELETE FROM material_prices WHERE material_id = $1`, id); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// PriceHistory — история цен материала: сначала самые поздние по дате,
// при равных датах — добавленные последними.
func (r *Repo) PriceHistory(ctx context.Context, materialID int64) ([]Price, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, material_id, price, price_date
		FROM material_prices
		WHERE material_id = $1
		ORDER BY price_date DESC, id DESC
	`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPrices(rows)
}

// PricesByIDs возвращает цены по списку id выбранных точек.
// Несуществующие id в карту не попадают.
func (r *Repo) PricesByIDs(ctx context.Context, ids []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, price FROM material_prices WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		out[id] = price
	}
	return out, rows.Err()
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]Material, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.UnitID, &m.Unit, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func priceHistoryTx(ctx context.Context, tx pgx.Tx, materialID int64) ([]Price, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, material_id, price, price_date
		FROM material_prices
		WHERE material_id = $1
		ORDER BY price_date DESC, id DESC
	`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPrices(rows)
}

func scanPrices(rows pgx.Rows) ([]Price, error) {
	var out []Price
	for rows.Next() {
		var p Price
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.Price, &p.Date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
