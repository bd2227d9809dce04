package usecase

import (
	"context"
	"errors"
	"time"

	"dhruvtara/internal/domain/user"
	"dhruvtara/internal/pkg/jwt"
	"dhruvtara/internal/pkg/logger"
	ucauth "dhruvtara/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrInternal            = errors.New("internal error")
)

const revokedKeyPrefix = "auth:revoked:"

// TokenStore keeps the deny-list of logged-out token ids. The deny-list
// is best-effort: when the store fails, tokens are treated as not revoked
// and revocations are dropped with a warning, so authentication keeps
// working without Redis.
type TokenStore interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

type AuthUsecase interface {
	Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, access jwt.Claims, refreshToken string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	tokens  TokenStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, tokens TokenStore, log *zap.Logger) *Auth {
	return &Auth{
		authSvc: ucauth.NewService(users),
		users:   users,
		jwt:     jwtSvc,
		tokens:  tokens,
		logger:  logger.OrNop(log),
		now:     time.Now,
	}
}

func (u *Auth) Signup(ctx context.Context, in ucauth.SignupInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Signup(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	return u.issue(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	revoked, _ := u.IsRevoked(ctx, claims.ID)
	if revoked {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	// Rotation: the presented refresh token is spent.
	u.revoke(ctx, claims)

	_, access, refresh, err := u.issue(usr)
	return access, refresh, err
}

// Logout revokes the access token and, when given, a refresh token
// belonging to the same user.
func (u *Auth) Logout(ctx context.Context, access jwt.Claims, refreshToken string) error {
	if access.ID == "" || access.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	u.revoke(ctx, access)

	if refreshToken == "" {
		return nil
	}
	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil || !u.jwt.IsRefreshToken(claims) || claims.UserID != access.UserID {
		return nil
	}
	u.revoke(ctx, claims)
	return nil
}

// IsRevoked never fails: a store error reads as not revoked.
func (u *Auth) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if u.tokens == nil || tokenID == "" {
		return false, nil
	}
	revoked, err := u.tokens.Exists(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		u.logger.Warn("revocation check failed, accepting token", zap.String("jti", tokenID), zap.Error(err))
		return false, nil
	}
	return revoked, nil
}

type revokedToken struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (u *Auth) revoke(ctx context.Context, claims jwt.Claims) {
	if u.tokens == nil {
		return
	}
	now := u.now()
	ttl := claims.TTL(now)
	if ttl <= 0 {
		return
	}
	err := u.tokens.SetJSON(ctx, revokedKeyPrefix+claims.ID, revokedToken{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		RevokedAt: now.UTC(),
	}, ttl)
	if err != nil {
		u.logger.Warn("token revocation dropped",
			zap.String("jti", claims.ID),
			zap.String("token_type", claims.TokenType),
			zap.Error(err),
		)
	}
}

func (u *Auth) issue(usr user.User) (user.User, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return usr, access, refresh, nil
}
