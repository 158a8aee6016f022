package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-admin/storefront-admin/internal/platform/db"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

const userColumns = `id, nome, email, senha, perfil`

const (
	sqlInsert     = `INSERT INTO usuario (nome, email, senha, perfil) VALUES ($1, $2, $3, $4) RETURNING id`
	sqlGet        = `SELECT ` + userColumns + ` FROM usuario WHERE id = $1`
	sqlGetByEmail = `SELECT ` + userColumns + ` FROM usuario WHERE email = $1`
	sqlList       = `SELECT ` + userColumns + ` FROM usuario ORDER BY nome, id`
	// a NULL hash keeps the stored password
	sqlUpdate      = `UPDATE usuario SET nome = $1, email = $2, perfil = $3, senha = COALESCE($4, senha) WHERE id = $5`
	sqlDelete      = `DELETE FROM usuario WHERE id = $1`
	sqlCount       = `SELECT COUNT(*) FROM usuario`
	sqlSearch      = `SELECT ` + userColumns + ` FROM usuario WHERE nome ILIKE $1 OR email ILIKE $2 ORDER BY %s LIMIT $3 OFFSET $4`
	sqlCountSearch = `SELECT COUNT(*) FROM usuario WHERE nome ILIKE $1 OR email ILIKE $2`
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, user User) (User, error) {
	err := r.pool.QueryRow(ctx, sqlInsert, user.Name, user.Email, user.PasswordHash, user.Profile).Scan(&user.ID)
	if err != nil {
		return User{}, db.MapError("users: create", err)
	}
	return user, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	return r.one(ctx, "users: get", sqlGet, id)
}

// GetByEmail looks up an account by its exact, already normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.one(ctx, "users: get by email", sqlGetByEmail, email)
}

// List returns all users ordered by name.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	return r.query(ctx, "users: list", sqlList)
}

func (r *Repository) Update(ctx context.Context, user User) error {
	tag, err := r.pool.Exec(ctx, sqlUpdate, user.Name, user.Email, user.Profile, user.PasswordHash, user.ID)
	if err != nil {
		return db.MapError("users: update", err)
	}
	return db.RequireAffected("users: update", tag)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, sqlDelete, id)
	if err != nil {
		return db.MapError("users: delete", err)
	}
	return db.RequireAffected("users: delete", tag)
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, sqlCount).Scan(&total); err != nil {
		return 0, db.MapError("users: count", err)
	}
	return total, nil
}

func (r *Repository) Search(ctx context.Context, params shared.SearchParams) ([]User, error) {
	order, err := shared.SortClause(params.Sort, "nome")
	if err != nil {
		return nil, err
	}
	pattern := params.Pattern()
	return r.query(ctx, "users: search", fmt.Sprintf(sqlSearch, order), pattern, pattern, params.PageSize, params.Offset())
}

func (r *Repository) CountSearch(ctx context.Context, term string) (int, error) {
	pattern := shared.LikePattern(term)
	var total int
	if err := r.pool.QueryRow(ctx, sqlCountSearch, pattern, pattern).Scan(&total); err != nil {
		return 0, db.MapError("users: count search", err)
	}
	return total, nil
}

func (r *Repository) one(ctx context.Context, op, sql string, arg any) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Profile)
	if err != nil {
		return User{}, db.MapError(op, err)
	}
	return u, nil
}

func (r *Repository) query(ctx context.Context, op, sql string, args ...any) ([]User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, db.MapError(op, err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Profile); err != nil {
			return nil, db.MapError(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError(op, err)
	}
	return users, nil
}
