package repository

import (
	"context"

	"github.com/mkhosravi/CourseHubBack/internal/models"
)

type EnrollmentRepository struct {
	db DBTX
}

func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(
	ctx context.Context,
	userID int64,
	courseID int64,
) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id, progress, grade)
		VALUES ($1, $2, 0, NULL)
		RETURNING id, user_id, course_id, progress, grade, created_at, updated_at
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.Grade,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) GetByID(
	ctx context.Context,
	enrollmentID int64,
) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, grade, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, enrollmentID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.Grade,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) GetByUserAndCourse(
	ctx context.Context,
	userID int64,
	courseID int64,
) (*models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, grade, created_at, updated_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2
	`
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.Grade,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByUserID(
	ctx context.Context,
	userID int64,
) ([]models.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, progress, grade, created_at, updated_at
		FROM enrollments
		WHERE user_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.Progress,
			&enrollment.Grade,
			&enrollment.CreatedAt,
			&enrollment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// UpdateProgressIfNotLower applies the new progress only when it does
// not regress the stored value, so concurrent writers cannot move a row
// backwards. Returns pgx.ErrNoRows when the row is missing or the
// stored progress is already higher.
func (r *EnrollmentRepository) UpdateProgressIfNotLower(
	ctx context.Context,
	enrollmentID int64,
	progress int,
) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET progress = $2, updated_at = NOW()
		WHERE id = $1 AND progress <= $2
		RETURNING id, user_id, course_id, progress, grade, created_at, updated_at
	`
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, enrollmentID, progress).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.Grade,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) UpdateGrade(
	ctx context.Context,
	enrollmentID int64,
	grade int,
) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET grade = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, course_id, progress, grade, created_at, updated_at
	`
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, enrollmentID, grade).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.Grade,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
