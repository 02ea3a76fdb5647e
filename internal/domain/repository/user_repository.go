package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cublex/internal/common"
	"cublex/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository is the credential store. Lookups that find nothing return
// (nil, nil).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, hashed_password, role, minecraft_username, created_at, last_login_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, role, minecraft_username, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword, string(user.Role), user.MinecraftUsername, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrDuplicateIdentity)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

// FindByUsernameOrEmail prefers an exact username match over an email match.
func (r *pgUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	query := `SELECT ` + userColumns + `
	          FROM users WHERE username = $1 OR email = $1
	          ORDER BY (username = $1) DESC LIMIT 1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsernameOrEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLastLogin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLastLogin: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var role string
	var lastLogin sql.NullTime
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &role, &user.MinecraftUsername, &user.CreatedAt, &lastLogin,
	)
	if err != nil {
		return nil, err
	}
	user.Role = model.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLoginAt = &t
	}
	return user, nil
}
