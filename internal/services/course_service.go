package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
)

type courseStore interface {
	Create(ctx context.Context, input repository.CreateCourseInput) (*models.Course, error)
	GetByID(ctx context.Context, courseID int64) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
}

type liveSessionReader interface {
	ListByCourseID(ctx context.Context, courseID int64) ([]models.LiveSession, error)
	ListAll(ctx context.Context) ([]models.LiveSession, error)
}

type CourseService struct {
	courseRepo      courseStore
	liveSessionRepo liveSessionReader
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	liveSessionRepo *repository.LiveSessionRepository,
) *CourseService {
	return &CourseService{
		courseRepo:      courseRepo,
		liveSessionRepo: liveSessionRepo,
	}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
}

// CreateCourse is instructor-only; the creating instructor becomes the
// course owner and ownership never changes afterwards.
func (s *CourseService) CreateCourse(
	ctx context.Context,
	actor authz.Actor,
	input CreateCourseInput,
) (*models.Course, error) {
	if !authz.Decide(actor, authz.ActionCreateCourse, authz.Resource{}) {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	if title == "" || category == "" {
		return nil, ErrInvalidInput
	}
	if input.Price < 0 {
		return nil, ErrInvalidInput
	}

	return s.courseRepo.Create(ctx, repository.CreateCourseInput{
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		InstructorID: actor.ID,
		Price:        input.Price,
		Category:     category,
	})
}

func (s *CourseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *CourseService) GetCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// ListLiveSessions returns the schedule for one course; an unknown
// course simply yields an empty list, matching the read surface.
func (s *CourseService) ListLiveSessions(
	ctx context.Context,
	actor authz.Actor,
	courseID int64,
) ([]models.LiveSession, error) {
	if !authz.Decide(actor, authz.ActionReadLiveSessions, authz.Resource{}) {
		return nil, ErrForbidden
	}
	return s.liveSessionRepo.ListByCourseID(ctx, courseID)
}

func (s *CourseService) ListAllLiveSessions(
	ctx context.Context,
	actor authz.Actor,
) ([]models.LiveSession, error) {
	if !authz.Decide(actor, authz.ActionReadLiveSessions, authz.Resource{}) {
		return nil, ErrForbidden
	}
	return s.liveSessionRepo.ListAll(ctx)
}
