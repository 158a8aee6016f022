package categories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-admin/storefront-admin/internal/platform/db"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Repository is the data-access boundary for the categoria table.
type Repository interface {
	Create(ctx context.Context, category Category) (Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, category Category) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, params shared.SearchParams) ([]Category, error)
	CountSearch(ctx context.Context, term string) (int, error)
	SeedIfEmpty(ctx context.Context, categories []Category) (int, error)
}

const (
	sqlInsert      = `INSERT INTO categoria (nome, descricao) VALUES ($1, $2) RETURNING id`
	sqlSeedInsert  = `INSERT INTO categoria (nome, descricao) VALUES ($1, $2)`
	sqlGet         = `SELECT id, nome, descricao FROM categoria WHERE id = $1`
	sqlList        = `SELECT id, nome, descricao FROM categoria ORDER BY nome, id`
	sqlUpdate      = `UPDATE categoria SET nome = $1, descricao = $2 WHERE id = $3`
	sqlDelete      = `DELETE FROM categoria WHERE id = $1`
	sqlCount       = `SELECT COUNT(*) FROM categoria`
	sqlSearch      = `SELECT id, nome, descricao FROM categoria WHERE nome ILIKE $1 OR descricao ILIKE $2 ORDER BY %s LIMIT $3 OFFSET $4`
	sqlCountSearch = `SELECT COUNT(*) FROM categoria WHERE nome ILIKE $1 OR descricao ILIKE $2`
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the PostgreSQL backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	if err := r.pool.QueryRow(ctx, sqlInsert, category.Name, category.Description).Scan(&category.ID); err != nil {
		return Category{}, db.MapError("categories: create", err)
	}
	return category, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	var c Category
	if err := r.pool.QueryRow(ctx, sqlGet, id).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return Category{}, db.MapError("categories: get", err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	return r.query(ctx, "categories: list", sqlList)
}

func (r *repository) Update(ctx context.Context, category Category) error {
	tag, err := r.pool.Exec(ctx, sqlUpdate, category.Name, category.Description, category.ID)
	if err != nil {
		return db.MapError("categories: update", err)
	}
	return db.RequireAffected("categories: update", tag)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, sqlDelete, id)
	if err != nil {
		return db.MapError("categories: delete", err)
	}
	return db.RequireAffected("categories: delete", tag)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, sqlCount).Scan(&total); err != nil {
		return 0, db.MapError("categories: count", err)
	}
	return total, nil
}

func (r *repository) Search(ctx context.Context, params shared.SearchParams) ([]Category, error) {
	order, err := shared.SortClause(params.Sort, "nome")
	if err != nil {
		return nil, err
	}
	pattern := params.Pattern()
	return r.query(ctx, "categories: search", fmt.Sprintf(sqlSearch, order), pattern, pattern, params.PageSize, params.Offset())
}

func (r *repository) CountSearch(ctx context.Context, term string) (int, error) {
	pattern := shared.LikePattern(term)
	var total int
	if err := r.pool.QueryRow(ctx, sqlCountSearch, pattern, pattern).Scan(&total); err != nil {
		return 0, db.MapError("categories: count search", err)
	}
	return total, nil
}

// SeedIfEmpty inserts categories in one batch when the table has no rows.
// It returns the number of inserted rows.
func (r *repository) SeedIfEmpty(ctx context.Context, categories []Category) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var total int
		if err := tx.QueryRow(ctx, sqlCount).Scan(&total); err != nil {
			return db.MapError("categories: seed count", err)
		}
		if total > 0 || len(categories) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, c := range categories {
			batch.Queue(sqlSeedInsert, c.Name, c.Description)
		}
		results := tx.SendBatch(ctx, batch)
		for range categories {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return db.MapError("categories: seed insert", err)
			}
			inserted++
		}
		return results.Close()
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *repository) query(ctx context.Context, op, sql string, args ...any) ([]Category, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.MapError(op, err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, db.MapError(op, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError(op, err)
	}
	return categories, nil
}
