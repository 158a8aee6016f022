package orders

type CreateOrderRequest struct {
	ClientID int64             `json:"id_cliente" validate:"required,gt=0"`
	Items    []CreateItemInput `json:"itens" validate:"required,min=1,dive"`
}

type CreateItemInput struct {
	ProductID int64 `json:"id_produto" validate:"required,gt=0"`
	Quantity  int   `json:"quantidade" validate:"required,gt=0,lte=2147483647"`
}

type AlterOrderRequest struct {
	ID    int64  `json:"id" validate:"required,gt=0"`
	State string `json:"estado" validate:"required,oneof=received paid shipped delivered cancelled"`
}

type OrderIDRequest struct {
	ID int64 `json:"id_pedido" validate:"required,gt=0"`
}
