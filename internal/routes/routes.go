package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkhosravi/CourseHubBack/internal/config"
	"github.com/mkhosravi/CourseHubBack/internal/handlers"
	"github.com/mkhosravi/CourseHubBack/internal/middleware"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
	"github.com/mkhosravi/CourseHubBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	liveSessionRepo := repository.NewLiveSessionRepository(db)
	authSessionRepo := repository.NewAuthSessionRepository(db)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessionService := services.NewSessionService(authSessionRepo, userRepo, sessionTTL)
	courseService := services.NewCourseService(courseRepo, liveSessionRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo)

	authHandler := handlers.NewAuthHandler(userRepo, sessionService)
	courseHandler := handlers.NewCourseHandler(courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)

	authRequired := middleware.AuthRequired(sessionService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authRequired, authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)

	courses := api.Group("/courses")
	courses.Get("", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Get("/:id/live-sessions", authRequired, courseHandler.ListCourseLiveSessions)

	authProtected := api.Group("/v1", authRequired)
	authProtected.Post("/courses", courseHandler.CreateCourse)
	authProtected.Get("/live-sessions", courseHandler.ListAllLiveSessions)

	enrollments := authProtected.Group("/enrollments")
	enrollments.Post("", enrollmentHandler.Enroll)
	enrollments.Get("", enrollmentHandler.ListEnrollments)
	enrollments.Patch("/:id/progress", enrollmentHandler.UpdateProgress)
	enrollments.Patch("/:id/grade", enrollmentHandler.UpdateGrade)
}
