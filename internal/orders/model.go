package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer purchase. Client is attached on detail reads only;
// Items is always a list there, empty for an order without lines.
type Order struct {
	ID        int64           `json:"id"`
	ClientID  int64           `json:"id_cliente"`
	State     State           `json:"estado"`
	CreatedAt time.Time       `json:"data_hora"`
	Total     decimal.Decimal `json:"valor_total"`
	Items     []Item          `json:"itens"`
	Client    *Client         `json:"cliente,omitempty"`
}

// Item is one order line. UnitPrice is the product price when the order
// was placed.
type Item struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"id_pedido"`
	ProductID int64           `json:"id_produto"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"valor_produto"`
}

// Subtotal is Quantity × UnitPrice.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Client is the account that placed an order.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// NewItem is a requested order line.
type NewItem struct {
	ProductID int64
	Quantity  int
}
