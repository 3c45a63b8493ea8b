package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/corehr/employee-api/internal/core/domain"
)

const uniqueViolationCode = "23505"

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	pool Queryer
}

func NewUserRepository(pool Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `
        SELECT id, username, hashed_password, role
          FROM users
         WHERE username = $1
    `, username)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `
        SELECT id, username, hashed_password, role
          FROM users
         WHERE id = $1
    `, id)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := QueryerFromContext(ctx, r.pool).QueryRow(ctx, `
        INSERT INTO users (username, hashed_password, role)
        VALUES ($1, $2, $3)
        RETURNING id, username, hashed_password, role
    `, user.Username, user.PasswordHash, user.Role)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return created, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
