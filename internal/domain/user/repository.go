package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrConflict marks a username or email already taken at insert time.
	ErrConflict = errors.New("user already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, u User, p Profile) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
