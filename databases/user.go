package databases

// go generate: mockery --name UserDatabase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/advocate-tools/legal-case-manager/models"
)

// UserDatabase contains the methods to use with the users collection and the
// current-user session record
type UserDatabase interface {
	Users(ctx context.Context) ([]models.User, error)
	SaveUsers(ctx context.Context, users []models.User) error
	CurrentUser(ctx context.Context) (*models.User, error)
	SetCurrentUser(ctx context.Context, user *models.User) error
}

type userDatabase struct {
	store Store
}

// NewUserDatabase initializes a new instance of user database with the
// provided store
func NewUserDatabase(store Store) UserDatabase {
	return &userDatabase{store: store}
}

func (u *userDatabase) Users(ctx context.Context) ([]models.User, error) {
	raw, err := u.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []models.User{}, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		zap.S().Errorw("stored users collection is malformed, treating as empty", "error", err)
		return []models.User{}, nil
	}
	return users, nil
}

func (u *userDatabase) SaveUsers(ctx context.Context, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return u.store.Set(ctx, UsersKey, string(raw))
}

// CurrentUser returns the session record, or nil when signed out
func (u *userDatabase) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := u.store.Get(ctx, CurrentUserKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		zap.S().Errorw("stored session record is malformed, treating as signed out", "error", err)
		return nil, nil
	}
	return &user, nil
}

// SetCurrentUser stores the session record without its password hash; a nil
// user clears the session
func (u *userDatabase) SetCurrentUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return u.store.Delete(ctx, CurrentUserKey)
	}
	raw, err := json.Marshal(user.WithoutPassword())
	if err != nil {
		return err
	}
	return u.store.Set(ctx, CurrentUserKey, string(raw))
}
