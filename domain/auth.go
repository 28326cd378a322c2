package domain

import "crypto/subtle"

// LoginOutcome is the user-facing result of a login attempt.
// Every outcome is a normal response; none of them is an error.
type LoginOutcome string

const (
	LoginSucceeded LoginOutcome = "Login exitoso"
	LoginFailed    LoginOutcome = "Login fallido"
	LoginInactive  LoginOutcome = "Login fallido (usuario inactivo)"
)

// PasswordChanged is the confirmation returned after a successful password change.
const PasswordChanged = "Contraseña actualizada correctamente"

// PasswordMatches compares the stored plaintext password with candidate by exact equality.
func (u *User) PasswordMatches(candidate string) bool {
	if u == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(candidate)) == 1
}

// Evaluate resolves a login attempt against the looked-up user (nil when unknown).
// Order: unknown user, wrong password, inactive account, success.
func Evaluate(u *User, password string) LoginOutcome {
	switch {
	case u == nil:
		return LoginFailed
	case !u.PasswordMatches(password):
		return LoginFailed
	case !u.IsActive:
		return LoginInactive
	default:
		return LoginSucceeded
	}
}
