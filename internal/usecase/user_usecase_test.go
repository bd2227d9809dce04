package usecase

import (
	"context"
	"testing"

	"dhruvtara/internal/domain/user"
	ucuser "dhruvtara/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_GetMe(t *testing.T) {
	users := newFakeUsers()
	id := uuid.New()
	school := "Central High"
	require.NoError(t, users.CreateUser(context.Background(),
		user.User{ID: id, Username: "meera", Email: "meera@example.com", PasswordHash: "secret"},
		user.Profile{UserID: id, School: &school},
	))

	me, err := NewUserUsecase(users).GetMe(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "meera", me.User.Username)
	assert.Empty(t, me.User.PasswordHash)
	require.NotNil(t, me.Profile)
	assert.Equal(t, school, *me.Profile.School)
}

func TestUser_GetMeWithoutProfile(t *testing.T) {
	users := newFakeUsers()
	id := uuid.New()
	users.users[id] = user.User{ID: id, Username: "no-profile"}

	me, err := NewUserUsecase(users).GetMe(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, me.Profile)
}

func TestUser_GetMeUnknown(t *testing.T) {
	_, err := NewUserUsecase(newFakeUsers()).GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ucuser.ErrNotFound)
}
