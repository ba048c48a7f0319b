package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
)

const uniqueViolationCode = "23505"

type enrollmentStore interface {
	Create(ctx context.Context, userID int64, courseID int64) (*models.Enrollment, error)
	GetByID(ctx context.Context, enrollmentID int64) (*models.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID int64, courseID int64) (*models.Enrollment, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Enrollment, error)
	UpdateProgressIfNotLower(ctx context.Context, enrollmentID int64, progress int) (*models.Enrollment, error)
	UpdateGrade(ctx context.Context, enrollmentID int64, grade int) (*models.Enrollment, error)
}

type courseReader interface {
	GetByID(ctx context.Context, courseID int64) (*models.Course, error)
}

// EnrollmentService owns the enrollment lifecycle: a student enrolls,
// only that student moves progress, only the course's instructor grades.
type EnrollmentService struct {
	enrollmentRepo enrollmentStore
	courseRepo     courseReader
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

func (s *EnrollmentService) Enroll(
	ctx context.Context,
	actor authz.Actor,
	courseID int64,
) (*models.Enrollment, error) {
	if !authz.Decide(actor, authz.ActionEnrollInCourse, authz.Resource{}) {
		return nil, ErrForbidden
	}
	if courseID <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	existing, err := s.enrollmentRepo.GetByUserAndCourse(ctx, actor.ID, courseID)
	if err == nil && existing != nil {
		return nil, ErrAlreadyEnrolled
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.Create(ctx, actor.ID, courseID)
	if err != nil {
		// The unique index closes the race the pre-check leaves open.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments is always scoped to the caller; no one reads another
// user's enrollments through this surface.
func (s *EnrollmentService) ListEnrollments(
	ctx context.Context,
	actor authz.Actor,
) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUserID(ctx, actor.ID)
}

func (s *EnrollmentService) SetProgress(
	ctx context.Context,
	actor authz.Actor,
	enrollmentID int64,
	progress int,
) (*models.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidInput
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionUpdateEnrollmentProgress, authz.Resource{
		EnrollmentUserID: enrollment.UserID,
	}) {
		return nil, ErrForbidden
	}

	if progress < enrollment.Progress {
		return nil, ErrInvalidInput
	}

	updated, err := s.enrollmentRepo.UpdateProgressIfNotLower(ctx, enrollmentID, progress)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Rows are never deleted, so a miss means a concurrent
			// writer already advanced past the requested value.
			return nil, ErrInvalidInput
		}
		return nil, err
	}
	return updated, nil
}

func (s *EnrollmentService) SetGrade(
	ctx context.Context,
	actor authz.Actor,
	enrollmentID int64,
	grade int,
) (*models.Enrollment, error) {
	if grade < 0 || grade > 100 {
		return nil, ErrInvalidInput
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if !authz.Decide(actor, authz.ActionUpdateEnrollmentGrade, authz.Resource{
		CourseInstructorID: course.InstructorID,
	}) {
		return nil, ErrForbidden
	}

	updated, err := s.enrollmentRepo.UpdateGrade(ctx, enrollmentID, grade)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return updated, nil
}
