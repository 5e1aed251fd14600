package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.UsersStorage = (*UsersRepository)(nil)

type UsersRepository struct {
	sqldb sqldb
}

func NewUsersRepository(sqldb sqldb) UsersRepository {
	return UsersRepository{sqldb}
}

func (r UsersRepository) CreateUser(
	ctx context.Context, u domain.User, passwordHash []byte,
) error {
	const op = "UsersRepository.CreateUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, creado)
		VALUES ($1, $2, $3, $4, $5);
	`

	_, err := r.sqldb.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, passwordHash, time.Now(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, domain.ErrEmailTaken)
		}
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r UsersRepository) UserByEmail(
	ctx context.Context, email string,
) (domain.User, []byte, bool, error) {
	const op = "UsersRepository.UserByEmail"

	if err := ctx.Err(); err != nil {
		return domain.User{}, nil, false, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, nombre, email, password_hash
		FROM usuarios
		WHERE email = $1;`

	var (
		u    domain.User
		hash []byte
	)
	err := r.sqldb.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &hash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, nil, false, nil
		}
		return domain.User{}, nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return u, hash, true, nil
}
