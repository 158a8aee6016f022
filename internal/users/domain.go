package users

// User is an account of the storefront. PasswordHash is nil for accounts
// that never log in with a password and is never serialized.
type User struct {
	ID           int64   `json:"id"`
	Name         string  `json:"nome"`
	Email        string  `json:"email"`
	PasswordHash *string `json:"-"`
	Profile      string  `json:"perfil"`
}

// HasPassword reports whether the account can log in with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// NewUser is the input for account creation.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Profile  string
}

// UserUpdate replaces name, email and profile. An empty Password keeps the
// stored hash.
type UserUpdate struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Profile  string
}
