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

type enrollmentApplicationService interface {
	Enroll(ctx context.Context, actor authz.Actor, courseID int64) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, actor authz.Actor) ([]models.Enrollment, error)
	SetProgress(ctx context.Context, actor authz.Actor, enrollmentID int64, progress int) (*models.Enrollment, error)
	SetGrade(ctx context.Context, actor authz.Actor, enrollmentID int64, grade int) (*models.Enrollment, error)
}

type EnrollmentHandler struct {
	service enrollmentApplicationService
}

func NewEnrollmentHandler(service *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

type enrollRequest struct {
	CourseID int64 `json:"course_id"`
}

type updateProgressRequest struct {
	Progress *int `json:"progress"`
}

type updateGradeRequest struct {
	Grade *int `json:"grade"`
}

func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	if actor.Role != authz.RoleStudent {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Only students can enroll in courses"})
	}

	var req enrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CourseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "course_id must be greater than 0"})
	}

	enrollment, err := h.service.Enroll(c.Context(), actor, req.CourseID)
	if err != nil {
		return mapEnrollmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"enrollment": enrollment})
}

func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	enrollments, err := h.service.ListEnrollments(c.Context(), actor)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return c.JSON(fiber.Map{"enrollments": enrollments})
}

func (h *EnrollmentHandler) UpdateProgress(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	enrollmentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || enrollmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment id"})
	}

	var req updateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Progress == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "progress is required"})
	}

	enrollment, err := h.service.SetProgress(c.Context(), actor, enrollmentID, *req.Progress)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return c.JSON(fiber.Map{"enrollment": enrollment})
}

func (h *EnrollmentHandler) UpdateGrade(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	if actor.Role != authz.RoleInstructor {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "Only instructors can update grades"})
	}

	enrollmentID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || enrollmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment id"})
	}

	var req updateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Grade == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "grade is required"})
	}

	enrollment, err := h.service.SetGrade(c.Context(), actor, enrollmentID, *req.Grade)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return c.JSON(fiber.Map{"enrollment": enrollment})
}

func mapEnrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Value must be between 0 and 100 and may not decrease"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already enrolled in this course"})
	case errors.Is(err, services.ErrCourseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	case errors.Is(err, services.ErrEnrollmentNotFound), errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process enrollment request"})
	}
}
