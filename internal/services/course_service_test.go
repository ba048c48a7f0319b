package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
)

type stubCourseRepo struct {
	createResult *models.Course
	createErr    error
	getResult    *models.Course
	getErr       error
	listResult   []models.Course
	listErr      error
	lastCreate   repository.CreateCourseInput
}

func (r *stubCourseRepo) Create(_ context.Context, input repository.CreateCourseInput) (*models.Course, error) {
	r.lastCreate = input
	return r.createResult, r.createErr
}

func (r *stubCourseRepo) GetByID(_ context.Context, _ int64) (*models.Course, error) {
	return r.getResult, r.getErr
}

func (r *stubCourseRepo) List(_ context.Context) ([]models.Course, error) {
	return r.listResult, r.listErr
}

type stubLiveSessionRepo struct {
	byCourse []models.LiveSession
	all      []models.LiveSession
	err      error
}

func (r *stubLiveSessionRepo) ListByCourseID(_ context.Context, _ int64) ([]models.LiveSession, error) {
	return r.byCourse, r.err
}

func (r *stubLiveSessionRepo) ListAll(_ context.Context) ([]models.LiveSession, error) {
	return r.all, r.err
}

func TestCourseServiceCreateCourseForbiddenForStudent(t *testing.T) {
	service := &CourseService{
		courseRepo:      &stubCourseRepo{},
		liveSessionRepo: &stubLiveSessionRepo{},
	}

	_, err := service.CreateCourse(context.Background(), studentActor, CreateCourseInput{
		Title:    "Stargazing 101",
		Category: "Astronomy",
		Price:    49.99,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCourseServiceCreateCourseValidatesInput(t *testing.T) {
	service := &CourseService{
		courseRepo:      &stubCourseRepo{},
		liveSessionRepo: &stubLiveSessionRepo{},
	}

	cases := []CreateCourseInput{
		{Title: "", Category: "Astronomy", Price: 10},
		{Title: "   ", Category: "Astronomy", Price: 10},
		{Title: "Stargazing 101", Category: "", Price: 10},
		{Title: "Stargazing 101", Category: "Astronomy", Price: -0.01},
	}
	for _, input := range cases {
		if _, err := service.CreateCourse(context.Background(), instructorActor, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestCourseServiceCreateCourseOwnedByCreator(t *testing.T) {
	repo := &stubCourseRepo{
		createResult: &models.Course{ID: 5, Title: "Stargazing 101", InstructorID: 10, Price: 49.99, Category: "Astronomy"},
	}
	service := &CourseService{courseRepo: repo, liveSessionRepo: &stubLiveSessionRepo{}}

	course, err := service.CreateCourse(context.Background(), instructorActor, CreateCourseInput{
		Title:       " Stargazing 101 ",
		Description: "Intro to the night sky",
		Category:    "Astronomy",
		Price:       49.99,
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if course.InstructorID != instructorActor.ID {
		t.Fatalf("expected owner %d, got %d", instructorActor.ID, course.InstructorID)
	}
	if repo.lastCreate.InstructorID != instructorActor.ID {
		t.Fatalf("expected instructor id from actor, got %d", repo.lastCreate.InstructorID)
	}
	if repo.lastCreate.Title != "Stargazing 101" {
		t.Fatalf("expected trimmed title, got %q", repo.lastCreate.Title)
	}
}

func TestCourseServiceGetCourseNotFound(t *testing.T) {
	service := &CourseService{
		courseRepo:      &stubCourseRepo{getErr: pgx.ErrNoRows},
		liveSessionRepo: &stubLiveSessionRepo{},
	}

	_, err := service.GetCourse(context.Background(), 404)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseServiceLiveSessionsVisibleToBothRoles(t *testing.T) {
	service := &CourseService{
		courseRepo: &stubCourseRepo{},
		liveSessionRepo: &stubLiveSessionRepo{
			byCourse: []models.LiveSession{{ID: 1, CourseID: 5}},
			all:      []models.LiveSession{{ID: 1, CourseID: 5}, {ID: 2, CourseID: 6}},
		},
	}

	for _, actor := range []struct {
		name  string
		actor authz.Actor
	}{
		{"student", studentActor},
		{"instructor", instructorActor},
	} {
		sessions, err := service.ListLiveSessions(context.Background(), actor.actor, 5)
		if err != nil {
			t.Fatalf("%s ListLiveSessions: %v", actor.name, err)
		}
		if len(sessions) != 1 {
			t.Fatalf("%s: expected 1 session, got %d", actor.name, len(sessions))
		}

		all, err := service.ListAllLiveSessions(context.Background(), actor.actor)
		if err != nil {
			t.Fatalf("%s ListAllLiveSessions: %v", actor.name, err)
		}
		if len(all) != 2 {
			t.Fatalf("%s: expected 2 sessions, got %d", actor.name, len(all))
		}
	}
}
