package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByIDs retrieves multiple users by id in a single batch query.
	// Returns a map of id → User; missing users are simply absent from the
	// map (no error). Errors indicate database failures only.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)
}

// UserService defines the interface for account business logic
type UserService interface {
	// Register creates a new account and returns it with a fresh bearer token
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials and returns the account with a fresh bearer token
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// GetUser retrieves a user's public profile by id
	GetUser(ctx context.Context, id string) (*UserView, error)

	// RequestPasswordReset accepts a reset request. The outward behavior is
	// identical whether or not the email is registered, so the endpoint
	// cannot be used to enumerate accounts. Mail delivery is not implemented.
	RequestPasswordReset(ctx context.Context, email string) error
}
