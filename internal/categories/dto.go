package categories

type CreateCategoryRequest struct {
	Name        string `json:"nome" validate:"required,max=200"`
	Description string `json:"descricao" validate:"required,max=2000"`
}

type UpdateCategoryRequest struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	Name        string `json:"nome" validate:"required,max=200"`
	Description string `json:"descricao" validate:"required,max=2000"`
}

type CategoryIDRequest struct {
	ID int64 `json:"id_categoria" validate:"required,gt=0"`
}
