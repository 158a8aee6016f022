package users

type CreateUserRequest struct {
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"omitempty,min=6,max=72"`
	Profile  string `json:"perfil" validate:"omitempty,oneof=cliente gerente admin"`
}

type UpdateUserRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Name     string `json:"nome" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"omitempty,min=6,max=72"`
	Profile  string `json:"perfil" validate:"required,oneof=cliente gerente admin"`
}

type UserIDRequest struct {
	ID int64 `json:"id_usuario" validate:"required,gt=0"`
}
