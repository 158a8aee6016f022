package products

import "github.com/shopspring/decimal"

// Product is a sellable catalog item. CategoryID is nil for products
// outside any category.
type Product struct {
	ID          int64           `json:"id"`
	CategoryID  *int64          `json:"id_categoria"`
	Name        string          `json:"nome"`
	Price       decimal.Decimal `json:"preco"`
	Description string          `json:"descricao"`
	Stock       int             `json:"estoque"`
}
