package user

import (
	"context"
	"errors"

	"dhruvtara/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrInternal = errors.New("internal error")
)

// Me is the account together with its optional profile.
type Me struct {
	User    user.User     `json:"user"`
	Profile *user.Profile `json:"profile"`
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Me{}, ErrNotFound
		}
		return Me{}, ErrInternal
	}
	usr.PasswordHash = ""

	me := Me{User: usr}
	p, err := s.users.GetProfile(ctx, userID)
	switch {
	case err == nil:
		me.Profile = &p
	case errors.Is(err, user.ErrNotFound):
	default:
		return Me{}, ErrInternal
	}
	return me, nil
}
