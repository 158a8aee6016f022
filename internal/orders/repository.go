package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storefront-admin/storefront-admin/internal/platform/db"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Reader is the read surface available inside a snapshot.
type Reader interface {
	Get(ctx context.Context, id int64) (Order, error)
	ListItems(ctx context.Context, orderID int64) ([]Item, error)
	GetClient(ctx context.Context, clientID int64) (Client, error)
}

// Repository persists orders and their items.
type Repository interface {
	Reader
	Create(ctx context.Context, clientID int64, items []NewItem) (Order, error)
	AlterState(ctx context.Context, id int64, state State) error
	TransitionState(ctx context.Context, id int64, from, to State) error
	ListByState(ctx context.Context, state State) ([]Order, error)
	WithSnapshot(ctx context.Context, fn func(Reader) error) error
}

const orderColumns = `id, id_cliente, estado, data_hora, valor_total`

const (
	sqlInsertOrder  = `INSERT INTO pedido (id_cliente, estado) VALUES ($1, $2) RETURNING id, data_hora`
	sqlProductPrice = `SELECT preco FROM produto WHERE id = $1`
	sqlInsertItem   = `INSERT INTO item_pedido (id_pedido, id_produto, quantidade, valor_produto)
		VALUES ($1, $2, $3, $4) RETURNING id`
	sqlSetTotal        = `UPDATE pedido SET valor_total = $1 WHERE id = $2`
	sqlAlterState      = `UPDATE pedido SET estado = $1 WHERE id = $2`
	sqlTransitionState = `UPDATE pedido SET estado = $1 WHERE id = $2 AND estado = $3`
	sqlExists          = `SELECT EXISTS (SELECT 1 FROM pedido WHERE id = $1)`
	sqlGet             = `SELECT ` + orderColumns + ` FROM pedido WHERE id = $1`
	sqlListByState     = `SELECT ` + orderColumns + ` FROM pedido WHERE estado = $1 ORDER BY data_hora, id`
	sqlListItems       = `SELECT id, id_pedido, id_produto, quantidade, valor_produto
		FROM item_pedido WHERE id_pedido = $1 ORDER BY id`
	sqlGetClient = `SELECT id, nome, email FROM usuario WHERE id = $1`
)

type repository struct {
	pool *pgxpool.Pool
	q    db.DBTX
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool, q: pool}
}

// Create inserts the order in its initial state together with its items.
// Each item snapshots the current product price; the order total is the
// sum of the item subtotals.
func (r *repository) Create(ctx context.Context, clientID int64, items []NewItem) (Order, error) {
	order := Order{ClientID: clientID, State: Initial(), Items: make([]Item, 0, len(items))}
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sqlInsertOrder, clientID, order.State).Scan(&order.ID, &order.CreatedAt); err != nil {
			return db.MapError("orders: create", err)
		}
		total := decimal.Zero
		for _, in := range items {
			item := Item{OrderID: order.ID, ProductID: in.ProductID, Quantity: in.Quantity}
			err := tx.QueryRow(ctx, sqlProductPrice, in.ProductID).Scan(&item.UnitPrice)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("orders: create: %w: product %d does not exist", shared.ErrConstraint, in.ProductID)
			}
			if err != nil {
				return db.MapError("orders: create", err)
			}
			if err := tx.QueryRow(ctx, sqlInsertItem, order.ID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return db.MapError("orders: create item", err)
			}
			total = total.Add(item.Subtotal())
			order.Items = append(order.Items, item)
		}
		if _, err := tx.Exec(ctx, sqlSetTotal, total, order.ID); err != nil {
			return db.MapError("orders: create", err)
		}
		order.Total = total
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

func (r *repository) AlterState(ctx context.Context, id int64, state State) error {
	tag, err := r.q.Exec(ctx, sqlAlterState, state, id)
	if err != nil {
		return db.MapError("orders: alter state", err)
	}
	return db.RequireAffected("orders: alter state", tag)
}

// TransitionState moves the order from one state to another only if it is
// still in the expected state.
func (r *repository) TransitionState(ctx context.Context, id int64, from, to State) error {
	tag, err := r.q.Exec(ctx, sqlTransitionState, to, id, from)
	if err != nil {
		return db.MapError("orders: transition state", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, sqlExists, id).Scan(&exists); err != nil {
		return db.MapError("orders: transition state", err)
	}
	if !exists {
		return fmt.Errorf("orders: transition state: %w", shared.ErrNotFound)
	}
	return fmt.Errorf("orders: transition %s to %s: %w", from, to, ErrStateConflict)
}

func (r *repository) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.q.QueryRow(ctx, sqlGet, id).Scan(&o.ID, &o.ClientID, &o.State, &o.CreatedAt, &o.Total)
	if err != nil {
		return Order{}, db.MapError("orders: get", err)
	}
	return o, nil
}

// ListByState returns the orders in state, oldest first.
func (r *repository) ListByState(ctx context.Context, state State) ([]Order, error) {
	rows, err := r.q.Query(ctx, sqlListByState, state)
	if err != nil {
		return nil, db.MapError("orders: list by state", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.State, &o.CreatedAt, &o.Total); err != nil {
			return nil, db.MapError("orders: list by state", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError("orders: list by state", err)
	}
	return orders, nil
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.q.Query(ctx, sqlListItems, orderID)
	if err != nil {
		return nil, db.MapError("orders: list items", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, db.MapError("orders: list items", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, db.MapError("orders: list items", err)
	}
	return items, nil
}

func (r *repository) GetClient(ctx context.Context, clientID int64) (Client, error) {
	var c Client
	if err := r.q.QueryRow(ctx, sqlGetClient, clientID).Scan(&c.ID, &c.Name, &c.Email); err != nil {
		return Client{}, db.MapError("orders: get client", err)
	}
	return c, nil
}

// WithSnapshot runs fn against a read-only repeatable-read transaction so
// all reads observe the same database state.
func (r *repository) WithSnapshot(ctx context.Context, fn func(Reader) error) error {
	return db.WithReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&repository{pool: r.pool, q: tx})
	})
}
