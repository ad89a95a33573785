package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/andrwlab/Season2App/internal/store"
	users "github.com/andrwlab/Season2App/internal/user"
	"github.com/andrwlab/Season2App/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
)

type UserService struct {
	db    *sqlx.DB
	store *store.UserStore
}

func NewUserService(db *sqlx.DB, store *store.UserStore) *UserService {
	return &UserService{db: db, store: store}
}

// FindOrCreateUserByProvider resolves the signed-in OAuth identity to
// a local user, creating one with the viewer role on first sign-in.
// Roles are only ever granted out-of-band via the setrole tool.
func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)

	if err == nil {
		if utils.OrZero(user.AvatarURL) != gothUser.AvatarURL || user.Username != gothUser.Name {
			user.Username = gothUser.Name
			user.AvatarURL = utils.StringOrNil(gothUser.AvatarURL)
			s.store.UpdateUserNameAndAvatar(ctx, user)
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   gothUser.Name,
			Role:       users.RoleViewer,
			Provider:   &gothUser.Provider,
			ProviderID: &gothUser.UserID,
			AvatarURL:  utils.StringOrNil(gothUser.AvatarURL),
		}
		err := s.store.CreateUser(ctx, newUser)
		return newUser, err
	}

	return nil, err
}

// SetRoleByEmail grants a role to an existing user, returning the role
// they held before.
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role users.Role) (users.Role, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	previous := user.Role
	if err := s.store.UpdateUserRole(ctx, user.ID, role); err != nil {
		return "", err
	}
	return previous, nil
}
