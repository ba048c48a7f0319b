package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/services"
)

type courseApplicationService interface {
	CreateCourse(ctx context.Context, actor authz.Actor, input services.CreateCourseInput) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, courseID int64) (*models.Course, error)
	ListLiveSessions(ctx context.Context, actor authz.Actor, courseID int64) ([]models.LiveSession, error)
	ListAllLiveSessions(ctx context.Context, actor authz.Actor) ([]models.LiveSession, error)
}

type CourseHandler struct {
	service courseApplicationService
}

func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

type createCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	if actor.Role != authz.RoleInstructor {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Only instructors can create courses"})
	}

	var req createCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	course, err := h.service.CreateCourse(c.Context(), actor, services.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return mapCourseError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"course": course})
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.Context())
	if err != nil {
		return mapCourseError(c, err)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || courseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	course, err := h.service.GetCourse(c.Context(), courseID)
	if err != nil {
		return mapCourseError(c, err)
	}
	return c.JSON(fiber.Map{"course": course})
}

func (h *CourseHandler) ListCourseLiveSessions(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	courseID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || courseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course id"})
	}

	sessions, err := h.service.ListLiveSessions(c.Context(), actor, courseID)
	if err != nil {
		return mapCourseError(c, err)
	}
	return c.JSON(fiber.Map{"live_sessions": sessions})
}

func (h *CourseHandler) ListAllLiveSessions(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	sessions, err := h.service.ListAllLiveSessions(c.Context(), actor)
	if err != nil {
		return mapCourseError(c, err)
	}
	return c.JSON(fiber.Map{"live_sessions": sessions})
}

func mapCourseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrCourseNotFound), errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process course request"})
	}
}
