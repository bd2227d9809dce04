package dto

import (
	"time"

	"dhruvtara/internal/domain/user"
	ucuser "dhruvtara/internal/usecase/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	PhoneNumber *string `json:"phone_number"`
	DateOfBirth *string `json:"date_of_birth"`
	School      *string `json:"school"`
	Grade       *int16  `json:"grade"`
}

type MeResponse struct {
	User    UserResponse     `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

func NewMeResponse(me ucuser.Me) MeResponse {
	res := MeResponse{User: NewUserResponse(me.User)}
	if p := me.Profile; p != nil {
		prof := ProfileResponse{PhoneNumber: p.PhoneNumber, School: p.School, Grade: p.Grade}
		if p.DateOfBirth != nil {
			dob := p.DateOfBirth.Format(time.DateOnly)
			prof.DateOfBirth = &dob
		}
		res.Profile = &prof
	}
	return res
}
