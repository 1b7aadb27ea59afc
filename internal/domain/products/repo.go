package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRefNotFound — строка спецификации или расходов ссылается на
// несуществующий материал или вид расхода.
var ErrRefNotFound = errors.New("referenced row not found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create создаёт изделие вместе со спецификацией и прочими расходами одной
// транзакцией: либо записывается всё, либо ничего.
func (r *Repo) Create(ctx context.Context, name, description string, lines []BOMLineInput, expenses []ExpenseInput) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0")
		}
	}
	for _, e := range expenses {
		if e.Value < 0 {
			return nil, fmt.Errorf("expense value must be >= 0")
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO products (name, description)
		VALUES ($1,$2)
		RETURNING id, name, description, created_at
	`, name, description)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO bom_lines (product_id, material_id, quantity)
			VALUES ($1,$2,$3)
		`, p.ID, l.MaterialID, l.Quantity); err != nil {
			if isFKViolation(err) {
				return nil, ErrRefNotFound
			}
			return nil, err
		}
	}
	for _, e := range expenses {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_expenses (product_id, expense_type_id, value)
			VALUES ($1,$2,$3)
		`, p.ID, e.ExpenseTypeID, e.Value); err != nil {
			if isFKViolation(err) {
				return nil, ErrRefNotFound
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at FROM products WHERE id = $1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `
		SELECT id, name, description, created_at FROM products ORDER BY id
	`)
}

// Search ищет по подстроке id, имени или описания, без учёта регистра.
func (r *Repo) Search(ctx context.Context, term string) ([]Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	like := "%" + strings.ToLower(term) + "%"
	return r.query(ctx, `
		SELECT id, name, description, created_at
		FROM products
		WHERE id::text LIKE $1 OR LOWER(name) LIKE $1 OR LOWER(description) LIKE $1
		ORDER BY id
	`, like)
}

// Details — изделие со спецификацией и расходами; для каждой строки
// спецификации подставлена цена по умолчанию (последняя по дате, при
// равных датах — добавленная последней).
func (r *Repo) Details(ctx context.Context, id int64) (*Details, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}

	d := &Details{Product: *p}

	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.material_id, m.name, u.name, b.quantity,
		       COALESCE(pr.id, 0), COALESCE(pr.price, 0)
		FROM bom_lines b
		JOIN materials m ON m.id = b.material_id
		JOIN units u ON u.id = m.unit_id
		LEFT JOIN LATERAL (
			SELECT id, price FROM material_prices
			WHERE material_id = b.material_id
			ORDER BY price_date DESC, id DESC
			LIMIT 1
		) pr ON TRUE
		WHERE b.product_id = $1
		ORDER BY b.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l DetailLine
		if err := rows.Scan(&l.ID, &l.MaterialID, &l.MaterialName, &l.Unit, &l.Quantity, &l.DefaultPriceID, &l.DefaultPrice); err != nil {
			return nil, err
		}
		d.Lines = append(d.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	erows, err := r.pool.Query(ctx, `
		SELECT pe.id, pe.expense_type_id, et.name, pe.value
		FROM product_expenses pe
		JOIN expense_types et ON et.id = pe.expense_type_id
		WHERE pe.product_id = $1
		ORDER BY pe.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	for erows.Next() {
		var e DetailExpense
		if err := erows.Scan(&e.ID, &e.ExpenseTypeID, &e.ExpenseType, &e.Value); err != nil {
			return nil, err
		}
		d.Expenses = append(d.Expenses, e)
	}
	return d, erows.Err()
}

// Delete удаляет изделие; строки спецификации и расходов уходят каскадом
// на уровне схемы. Возвращает (false, nil), если изделия нет.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UsageOfMaterial — изделия, в чьих спецификациях встречается материал,
// с просуммированным количеством.
func (r *Repo) UsageOfMaterial(ctx context.Context, materialID int64) ([]Usage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, SUM(b.quantity)
		FROM bom_lines b
		JOIN products p ON p.id = b.product_id
		WHERE b.material_id = $1
		GROUP BY p.id, p.name
		ORDER BY p.id
	`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Usage
	for rows.Next() {
		var u Usage
		if err := rows.Scan(&u.ProductID, &u.Name, &u.Quantity); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
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
