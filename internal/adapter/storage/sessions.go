package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.SessionsStorage = (*SessionsRepository)(nil)

type SessionsRepository struct {
	sqldb sqldb
}

func NewSessionsRepository(sqldb sqldb) SessionsRepository {
	return SessionsRepository{sqldb}
}

func (r SessionsRepository) CreateSession(
	ctx context.Context, token, userID string, expires time.Time,
) error {
	const op = "SessionsRepository.CreateSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO sesiones (token, usuario_id, expira)
		VALUES ($1, $2, $3);
	`

	_, err := r.sqldb.ExecContext(ctx, query, token, userID, expires)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r SessionsRepository) SessionUser(
	ctx context.Context, token string,
) (domain.User, bool, error) {
	const op = "SessionsRepository.SessionUser"

	if err := ctx.Err(); err != nil {
		return domain.User{}, false, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT u.id, u.nombre, u.email
		FROM sesiones s
		JOIN usuarios u ON u.id = s.usuario_id
		WHERE s.token = $1 AND s.expira > now();`

	var u domain.User
	err := r.sqldb.QueryRowContext(ctx, query, token).Scan(
		&u.ID, &u.Name, &u.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return u, true, nil
}

func (r SessionsRepository) DeleteSession(ctx context.Context, token string) error {
	const op = "SessionsRepository.DeleteSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := r.sqldb.ExecContext(ctx,
		`DELETE FROM sesiones WHERE token = $1;`, token)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}
