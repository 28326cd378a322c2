package transport

// Pointer fields distinguish "absent" from zero values; `required` rejects absent.

type CreateUserRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUserRequest has no password field, so a password in the body is dropped on decode.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type PasswordChangeRequest struct {
	OldPassword *string `json:"old_password" validate:"required"`
	NewPassword *string `json:"new_password" validate:"required"`
}
