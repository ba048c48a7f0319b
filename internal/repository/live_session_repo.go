package repository

import (
	"context"

	"github.com/mkhosravi/CourseHubBack/internal/models"
)

// LiveSessionRepository only reads; session rows are provisioned
// outside the API.
type LiveSessionRepository struct {
	db DBTX
}

func NewLiveSessionRepository(db DBTX) *LiveSessionRepository {
	return &LiveSessionRepository{db: db}
}

func (r *LiveSessionRepository) ListByCourseID(
	ctx context.Context,
	courseID int64,
) ([]models.LiveSession, error) {
	query := `
		SELECT id, course_id, date, join_url
		FROM live_sessions
		WHERE course_id = $1
		ORDER BY date ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.LiveSession, 0)
	for rows.Next() {
		var session models.LiveSession
		if err := rows.Scan(
			&session.ID,
			&session.CourseID,
			&session.Date,
			&session.JoinURL,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *LiveSessionRepository) ListAll(ctx context.Context) ([]models.LiveSession, error) {
	query := `
		SELECT id, course_id, date, join_url
		FROM live_sessions
		ORDER BY date ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.LiveSession, 0)
	for rows.Next() {
		var session models.LiveSession
		if err := rows.Scan(
			&session.ID,
			&session.CourseID,
			&session.Date,
			&session.JoinURL,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
