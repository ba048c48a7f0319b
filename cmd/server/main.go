package main

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkhosravi/CourseHubBack/internal/authz"
	"github.com/mkhosravi/CourseHubBack/internal/config"
	"github.com/mkhosravi/CourseHubBack/internal/database"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/internal/repository"
	"github.com/mkhosravi/CourseHubBack/internal/routes"
	"github.com/mkhosravi/CourseHubBack/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	if cfg.AppEnv != "production" {
		if err := seedDefaultAccounts(context.Background(), database.DB, cfg); err != nil {
			log.Fatalf("Failed to seed default accounts: %v", err)
		}
	}

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, database.DB)

	// 4. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func seedDefaultAccounts(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	userRepo := repository.NewUserRepository(db)

	accounts := []struct {
		email    string
		password string
		role     authz.Role
	}{
		{cfg.DefaultStudentEmail, cfg.DefaultStudentPassword, authz.RoleStudent},
		{cfg.DefaultInstructorEmail, cfg.DefaultInstructorPassword, authz.RoleInstructor},
	}

	for _, account := range accounts {
		if account.email == "" || account.password == "" {
			continue
		}

		if _, err := userRepo.GetByEmail(ctx, account.email); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hashed, err := utils.HashPassword(account.password)
		if err != nil {
			return err
		}

		user := &models.User{
			Email:        account.email,
			PasswordHash: hashed,
			Role:         string(account.role),
		}
		if err := userRepo.CreateUser(ctx, user); err != nil {
			return err
		}
		log.Printf("Seeded default %s account %s", account.role, account.email)
	}

	return nil
}
