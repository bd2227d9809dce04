package repository

import (
	"context"
	"fmt"
	"time"

	"dhruvtara/internal/database"
	"dhruvtara/internal/database/postgres"
	"dhruvtara/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts the account and its profile in one transaction. A
// duplicate username or email is reported as user.ErrConflict.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User, p user.Profile) error {
	now := time.Now().UTC()
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, username, email, password_hash, first_name, last_name, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$7)`,
			u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, now,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO user_profiles (user_id, phone_number, date_of_birth, school, grade)
			 VALUES ($1,$2,$3,$4,$5)`,
			u.ID, p.PhoneNumber, p.DateOfBirth, p.School, p.Grade,
		); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", user.ErrConflict, err)
	}
	return err
}

const selectUser = `SELECT id, username, email, password_hash, first_name, last_name, created_at, updated_at FROM users`

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, selectUser+` WHERE username = $1`, username))
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, phone_number, date_of_birth, school, grade FROM user_profiles WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	if err := row.Scan(&p.UserID, &p.PhoneNumber, &p.DateOfBirth, &p.School, &p.Grade); err != nil {
		if isNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresUserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
