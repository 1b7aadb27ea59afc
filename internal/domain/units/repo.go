package units

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("unit name must not be empty")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO units (name) VALUES ($1)
		RETURNING id, name
	`, name)
	var u Unit
	if err := row.Scan(&u.ID, &u.Name); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name FROM units WHERE id = $1`, id)
	var u Unit
	if err := row.Scan(&u.ID, &u.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) List(ctx context.Context) ([]Unit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM units ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
