package domain

// User is a stored account record. Password is kept in plaintext and never serialized.
type User struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"-"`
	Email    *string `json:"email"`
	IsActive bool    `json:"is_active"`
}

// UserPatch carries a partial update. Nil fields keep their stored value.
// There is no password field; passwords change only through UpdatePassword.
type UserPatch struct {
	Username *string
	Email    *string
	IsActive *bool
}
