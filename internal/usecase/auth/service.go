package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"dhruvtara/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already exists")
	ErrPasswordMismatch       = errors.New("passwords don't match")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const dateLayout = "2006-01-02"

// Field widths of the users and user_profiles columns.
const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	maxNameLen     = 30
	maxPhoneLen    = 15
	maxSchoolLen   = 255

	// bcrypt rejects longer passwords.
	maxPasswordBytes = 72
)

type SignupInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
	FirstName string
	LastName  string

	PhoneNumber string
	DateOfBirth string
	School      string
	Grade       *int
}

// LoginInput accepts a username, or an email when Login contains "@".
type LoginInput struct {
	Login    string
	Password string
}

type Service struct {
	users user.Repository
	now   func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, now: time.Now}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return user.User{}, ErrInvalidInput
	}
	if tooLong(username, maxUsernameLen) || tooLong(email, maxEmailLen) ||
		tooLong(strings.TrimSpace(in.FirstName), maxNameLen) || tooLong(strings.TrimSpace(in.LastName), maxNameLen) {
		return user.User{}, ErrInvalidInput
	}
	if in.Password1 != in.Password2 {
		return user.User{}, ErrPasswordMismatch
	}
	if !isValidPassword(in.Password1) || len(in.Password1) > maxPasswordBytes {
		return user.User{}, ErrInvalidInput
	}

	profile, err := buildProfile(in)
	if err != nil {
		return user.User{}, err
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if taken {
		return user.User{}, ErrUsernameTaken
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile.UserID = u.ID

	if err := s.users.CreateUser(ctx, u, profile); err != nil {
		if !errors.Is(err, user.ErrConflict) {
			return user.User{}, ErrInternal
		}
		// Lost a race with a concurrent signup.
		if taken, exErr := s.users.ExistsByUsername(ctx, username); exErr == nil && taken {
			return user.User{}, ErrUsernameTaken
		}
		if exists, exErr := s.users.ExistsByEmail(ctx, email); exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	var (
		u   user.User
		err error
	)
	if strings.Contains(login, "@") {
		u, err = s.users.GetUserByEmail(ctx, normalizeEmail(login))
	} else {
		u, err = s.users.GetUserByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func buildProfile(in SignupInput) (user.Profile, error) {
	var p user.Profile
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		if tooLong(v, maxPhoneLen) {
			return user.Profile{}, ErrInvalidInput
		}
		p.PhoneNumber = &v
	}
	if v := strings.TrimSpace(in.School); v != "" {
		if tooLong(v, maxSchoolLen) {
			return user.Profile{}, ErrInvalidInput
		}
		p.School = &v
	}
	if v := strings.TrimSpace(in.DateOfBirth); v != "" {
		dob, err := time.Parse(dateLayout, v)
		if err != nil {
			return user.Profile{}, ErrInvalidInput
		}
		p.DateOfBirth = &dob
	}
	if in.Grade != nil {
		if *in.Grade < user.MinGrade || *in.Grade > user.MaxGrade {
			return user.Profile{}, ErrInvalidInput
		}
		g := int16(*in.Grade)
		p.Grade = &g
	}
	return p, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func tooLong(v string, limit int) bool {
	return utf8.RuneCountInString(v) > limit
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
