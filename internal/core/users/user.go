package users

import "time"

// User represents a registered account. The password hash never leaves this
// package's service boundary.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
}

// RegisterRequest represents input for creating a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents input for authenticating an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public projection of a user, embedded in post and comment
// views and returned from auth endpoints.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// View returns the public projection of the user.
func (u *User) View() *UserView {
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// AuthResponse is returned from register and login: the account's public
// profile plus a bearer token for subsequent requests.
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}
