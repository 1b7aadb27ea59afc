package expensetypes

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*ExpenseType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("expense type name must not be empty")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expense_types (name) VALUES ($1)
		RETURNING id, name
	`, name)
	var e ExpenseType
	if err := row.Scan(&e.ID, &e.Name); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*ExpenseType, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name FROM expense_types WHERE id = $1`, id)
	var e ExpenseType
	if err := row.Scan(&e.ID, &e.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repo) List(ctx context.Context) ([]ExpenseType, error) {
	return r.query(ctx, `SELECT id, name FROM expense_types ORDER BY id`)
}

// Search ищет по подстроке id или имени, без учёта регистра.
// Пустой запрос — полный список в порядке добавления.
func (r *Repo) Search(ctx context.Context, term string) ([]ExpenseType, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}
	like := "%" + strings.ToLower(term) + "%"
	return r.query(ctx, `
		SELECT id, name FROM expense_types
		WHERE id::text LIKE $1 OR LOWER(name) LIKE $1
		ORDER BY id
	`, like)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]ExpenseType, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExpenseType
	for rows.Next() {
		var e ExpenseType
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
