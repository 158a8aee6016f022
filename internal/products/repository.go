package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-admin/storefront-admin/internal/platform/db"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, product Product) (Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, params shared.SearchParams) ([]Product, error)
	CountSearch(ctx context.Context, term string) (int, error)
}

const productColumns = `id, id_categoria, nome, preco, descricao, estoque`

const (
	sqlInsert = `INSERT INTO produto (id_categoria, nome, preco, descricao, estoque)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	sqlGet            = `SELECT ` + productColumns + ` FROM produto WHERE id = $1`
	sqlList           = `SELECT ` + productColumns + ` FROM produto ORDER BY nome, id`
	sqlListByCategory = `SELECT ` + productColumns + ` FROM produto WHERE id_categoria = $1 ORDER BY nome, id`
	sqlUpdate         = `UPDATE produto SET id_categoria = $1, nome = $2, preco = $3, descricao = $4, estoque = $5 WHERE id = $6`
	sqlDelete         = `DELETE FROM produto WHERE id = $1`
	sqlCount          = `SELECT COUNT(*) FROM produto`
	sqlSearch         = `SELECT ` + productColumns + ` FROM produto
		WHERE nome ILIKE $1 OR descricao ILIKE $2
		ORDER BY %s
		LIMIT $3 OFFSET $4`
	sqlCountSearch = `SELECT COUNT(*) FROM produto WHERE nome ILIKE $1 OR descricao ILIKE $2`
)

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	err := r.db.QueryRow(ctx, sqlInsert, product.CategoryID, product.Name, product.Price, product.Description, product.Stock).Scan(&product.ID)
	if err != nil {
		return Product{}, db.MapError("products: create", err)
	}
	return product, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, sqlGet, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Description, &p.Stock)
	if err != nil {
		return Product{}, db.MapError("products: get", err)
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, "products: list", sqlList)
}

func (r *repository) ListByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	return r.query(ctx, "products: list by category", sqlListByCategory, categoryID)
}

func (r *repository) Update(ctx context.Context, product Product) error {
	tag, err := r.db.Exec(ctx, sqlUpdate, product.CategoryID, product.Name, product.Price, product.Description, product.Stock, product.ID)
	if err != nil {
		return db.MapError("products: update", err)
	}
	return db.RequireAffected("products: update", tag)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, sqlDelete, id)
	if err != nil {
		return db.MapError("products: delete", err)
	}
	return db.RequireAffected("products: delete", tag)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, sqlCount).Scan(&total); err != nil {
		return 0, db.MapError("products: count", err)
	}
	return total, nil
}

func (r *repository) Search(ctx context.Context, params shared.SearchParams) ([]Product, error) {
	order, err := shared.SortClause(params.Sort, "nome")
	if err != nil {
		return nil, err
	}
	pattern := params.Pattern()
	return r.query(ctx, "products: search", fmt.Sprintf(sqlSearch, order), pattern, pattern, params.PageSize, params.Offset())
}

func (r *repository) CountSearch(ctx context.Context, term string) (int, error) {
	pattern := shared.LikePattern(term)
	var total int
	if err := r.db.QueryRow(ctx, sqlCountSearch, pattern, pattern).Scan(&total); err != nil {
		return 0, db.MapError("products: count search", err)
	}
	return total, nil
}

func (r *repository) query(ctx context.Context, op, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.MapError(op, err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.Description, &p.Stock); err != nil {
			return nil, db.MapError(op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError(op, err)
	}
	return products, nil
}
