package repository

import (
	"context"
	"time"

	"github.com/mkhosravi/CourseHubBack/internal/models"
)

type AuthSessionRepository struct {
	db DBTX
}

func NewAuthSessionRepository(db DBTX) *AuthSessionRepository {
	return &AuthSessionRepository{db: db}
}

func (r *AuthSessionRepository) Create(
	ctx context.Context,
	token string,
	userID int64,
	expiresAt time.Time,
) (*models.AuthSession, error) {
	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING token, user_id, created_at, expires_at
	`
	var session models.AuthSession
	err := r.db.QueryRow(ctx, query, token, userID, expiresAt).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByToken treats expired rows as absent; callers see pgx.ErrNoRows
// for an unknown and an expired token alike.
func (r *AuthSessionRepository) GetByToken(
	ctx context.Context,
	token string,
) (*models.AuthSession, error) {
	query := `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`
	var session models.AuthSession
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete is idempotent; removing a token that is already gone is not an
// error.
func (r *AuthSessionRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`
	_, err := r.db.Exec(ctx, query, token)
	return err
}

func (r *AuthSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at <= NOW()
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
