package users

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"
)

// Usernames: 3-30 characters, letters/digits/underscores only
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// Intentionally loose: one @, a dot in the domain, no whitespace.
// Deliverability is the mail server's problem, not ours.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// TokenIssuer mints bearer tokens for authenticated accounts.
// Implemented by auth.TokenService.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

type userService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, tokens TokenIssuer, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account with a bcrypt-hashed password
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	// Fail fast on duplicates for a friendly error; the unique constraints
	// in the users table remain the real guarantee under races.
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != ErrUserNotFound {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := &User{
		ID:           id.String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "username", created.Username)

	return &AuthResponse{Token: token, User: created.View()}, nil
}

// Login verifies the email/password pair and issues a bearer token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == ErrUserNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{Token: token, User: user.View()}, nil
}

// GetUser retrieves a user's public profile by id
func (s *userService) GetUser(ctx context.Context, id string) (*UserView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// RequestPasswordReset accepts a reset request without revealing whether the
// account exists. Token generation and mail delivery are not implemented;
// the lookup result only affects server-side logging.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return &InvalidEmailError{Email: email}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == ErrUserNotFound {
		s.logger.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

func validateRegisterRequest(req RegisterRequest) error {
	if !usernameRegex.MatchString(req.Username) {
		return &InvalidUsernameError{
			Username: req.Username,
			Reason:   "must be 3-30 characters of letters, digits, or underscores",
		}
	}

	if len(req.Email) > 254 || !emailRegex.MatchString(req.Email) {
		return &InvalidEmailError{Email: req.Email}
	}

	if len(req.Password) < minPasswordLength {
		return &WeakPasswordError{
			Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	// bcrypt silently truncates beyond 72 bytes; reject instead
	if len(req.Password) > 72 {
		return &WeakPasswordError{Reason: "must be at most 72 characters"}
	}

	return nil
}
