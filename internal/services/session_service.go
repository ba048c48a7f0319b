package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
	"github.com/mkhosravi/CourseHubBack/pkg/utils"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
)

type authSessionStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*models.AuthSession, error)
	GetByToken(ctx context.Context, token string) (*models.AuthSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionService owns the durable token -> user binding that
// authenticates every request.
type SessionService struct {
	sessions authSessionStore
	users    sessionUserReader
	ttl      time.Duration
}

func NewSessionService(
	sessions *repository.AuthSessionRepository,
	users *repository.UserRepository,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
	}
}

func (s *SessionService) Create(ctx context.Context, userID int64) (string, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.Create(ctx, token, userID, time.Now().UTC().Add(s.ttl)); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user bound to the token. Unknown and expired
// tokens yield ErrUnauthenticated; any other error means the session
// store itself failed and must not be mistaken for a bad credential.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ReapExpired removes sessions past their expiry. GetByToken already
// filters them out, so this is housekeeping rather than correctness.
func (s *SessionService) ReapExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}
