package products

import "github.com/shopspring/decimal"

// ProductForm is the multipart body of inserir_produto. The image travels
// in the "imagem" file part.
type ProductForm struct {
	Name        string `form:"nome" validate:"required,max=200"`
	CategoryID  *int64 `form:"id_categoria" validate:"omitempty,gt=0"`
	Price       string `form:"preco" validate:"required"`
	Description string `form:"descricao" validate:"required,max=2000"`
	Stock       int    `form:"estoque" validate:"gte=0,lte=2147483647"`
}

type UpdateProductRequest struct {
	ID          int64           `json:"id" validate:"required,gt=0"`
	CategoryID  *int64          `json:"id_categoria" validate:"omitempty,gt=0"`
	Name        string          `json:"nome" validate:"required,max=200"`
	Price       decimal.Decimal `json:"preco" validate:"gte=0,lt=10000000000"`
	Description string          `json:"descricao" validate:"required,max=2000"`
	Stock       int             `json:"estoque" validate:"gte=0,lte=2147483647"`
}

type ProductIDRequest struct {
	ID int64 `json:"id_produto" validate:"required,gt=0"`
}
