// Package auth implements registration, login and the stored session over
// the users collection. Passwords are kept as bcrypt hashes; the session
// record never carries one.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/advocate-tools/legal-case-manager/databases"
	"github.com/advocate-tools/legal-case-manager/models"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong
// password; callers get no hint which one it was
var ErrInvalidCredentials = errors.New("invalid username or password")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Seed account written on first run so a fresh install is usable immediately
const (
	seedUsername = "admin"
	seedEmail    = "admin@legalmanger.com"
	seedPassword = "password123"
)

// Service handles registration, login and the current session
type Service struct {
	users databases.UserDatabase
}

// New initializes the auth service with the provided user database
func New(users databases.UserDatabase) *Service {
	return &Service{users: users}
}

// Bootstrap seeds the demo account when the users collection is empty
func (s *Service) Bootstrap(ctx context.Context) error {
	users, err := s.users.Users(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	seed := models.User{
		ID:        uuid.NewString(),
		Username:  seedUsername,
		Email:     seedEmail,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.SaveUsers(ctx, []models.User{seed}); err != nil {
		return err
	}
	zap.S().Infow("seeded demo account", "username", seedUsername)
	return nil
}

// Register validates the input, creates the account with a hashed password
// and signs the new user in. Validation failures happen before any mutation.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", models.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", models.ErrValidation)
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, fmt.Errorf("%w: username already exists", models.ErrValidation)
		}
		if u.Email == email {
			return nil, fmt.Errorf("%w: email already exists", models.ErrValidation)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}
	if err := s.users.SetCurrentUser(ctx, &user); err != nil {
		return nil, err
	}
	signedIn := user.WithoutPassword()
	return &signedIn, nil
}

// Login matches usernameOrEmail against either field, verifies the password
// and stores the session
func (s *Service) Login(ctx context.Context, usernameOrEmail, password string) (*models.User, error) {
	users, err := s.users.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username != usernameOrEmail && u.Email != usernameOrEmail {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		if err := s.users.SetCurrentUser(ctx, &u); err != nil {
			return nil, err
		}
		signedIn := u.WithoutPassword()
		return &signedIn, nil
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the stored session
func (s *Service) Logout(ctx context.Context) error {
	return s.users.SetCurrentUser(ctx, nil)
}

// CurrentUser returns the signed-in user, or nil when signed out
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.users.CurrentUser(ctx)
}
