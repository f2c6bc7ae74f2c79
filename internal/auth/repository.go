// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/asset-management/internal/core"
)

type Repository interface {
	Create(ctx context.Context, session *Session) error
	FindByJTI(ctx context.Context, jti string) (*Session, error)
	Revoke(ctx context.Context, jti string) error
	RevokeAllForEmail(ctx context.Context, email string) ([]Session, error)
	ListActive(ctx context.Context, email string) ([]Session, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO sessions (jti, email, user_agent, ip_address, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		session.JTI,
		session.Email,
		session.UserAgent,
		session.IPAddress,
		session.IssuedAt,
		session.ExpiresAt,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create session: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *repository) FindByJTI(ctx context.Context, jti string) (*Session, error) {
	query := `
		SELECT jti, email, user_agent, ip_address, issued_at, expires_at, revoked_at
		FROM sessions
		WHERE jti = $1`

	var session Session
	err := r.db.GetContext(ctx, &session, query, jti)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &session, nil
}

func (r *repository) Revoke(ctx context.Context, jti string) error {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE jti = $1 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, jti)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	_, err = core.ExpectRows(result, "revoke session")
	return err
}

// RevokeAllForEmail revokes every live session of email and returns the
// ones it touched so their tokens can be blacklisted.
func (r *repository) RevokeAllForEmail(
	ctx context.Context,
	email string,
) ([]Session, error) {
	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE email = $1 AND revoked_at IS NULL AND expires_at > NOW()
		RETURNING jti, email, user_agent, ip_address, issued_at, expires_at, revoked_at`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, email); err != nil {
		return nil, fmt.Errorf("revoke sessions: %w", err)
	}

	return sessions, nil
}

func (r *repository) ListActive(ctx context.Context, email string) ([]Session, error) {
	query := `
		SELECT jti, email, user_agent, ip_address, issued_at, expires_at, revoked_at
		FROM sessions
		WHERE email = $1 AND revoked_at IS NULL AND expires_at > NOW()
		ORDER BY issued_at DESC`

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, query, email); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

func (r *repository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < NOW() - INTERVAL '7 days'`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return rows, nil
}
