package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mkhosravi/CourseHubBack/internal/models"
	"github.com/mkhosravi/CourseHubBack/pkg/utils"
)

type stubUserStore struct {
	byEmail    *models.User
	byEmailErr error
	byID       *models.User
	byIDErr    error
	createErr  error
	created    *models.User
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 42
	s.created = user
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	return s.byEmail, nil
}

func (s *stubUserStore) GetByID(_ context.Context, _ int64) (*models.User, error) {
	if s.byIDErr != nil {
		return nil, s.byIDErr
	}
	return s.byID, nil
}

type stubSessionManager struct {
	token          string
	createErr      error
	destroyErr     error
	lastUserID     int64
	destroyedToken string
}

func (s *stubSessionManager) Create(_ context.Context, userID int64) (string, error) {
	s.lastUserID = userID
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.token, nil
}

func (s *stubSessionManager) Destroy(_ context.Context, token string) error {
	s.destroyedToken = token
	return s.destroyErr
}

func (s *stubSessionManager) ReapExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newAuthTestApp(handler *AuthHandler) *fiber.App {
	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/logout", func(c *fiber.Ctx) error {
		c.Locals("session_token", "livetoken")
		return c.Next()
	}, handler.Logout)
	app.Get("/api/auth/me", func(c *fiber.Ctx) error {
		c.Locals("user_id", int64(42))
		return c.Next()
	}, handler.Me)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	handler := &AuthHandler{users: &stubUserStore{byEmailErr: pgx.ErrNoRows}, sessions: &stubSessionManager{token: "tok"}}
	app := newAuthTestApp(handler)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", `{
		"email": "new@example.com",
		"password": "longenough",
		"role": "admin"
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	handler := &AuthHandler{
		users:    &stubUserStore{byEmail: &models.User{ID: 1, Email: "new@example.com"}},
		sessions: &stubSessionManager{token: "tok"},
	}
	app := newAuthTestApp(handler)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", `{
		"email": "new@example.com",
		"password": "longenough",
		"role": "student"
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	users := &stubUserStore{byEmailErr: pgx.ErrNoRows}
	sessions := &stubSessionManager{token: "freshtoken"}
	handler := &AuthHandler{users: users, sessions: sessions}
	app := newAuthTestApp(handler)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/register", `{
		"email": "New@Example.com",
		"password": "longenough",
		"role": "instructor"
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if users.created == nil || users.created.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %+v", users.created)
	}
	if users.created.Role != "instructor" {
		t.Fatalf("expected instructor role, got %q", users.created.Role)
	}
	if sessions.lastUserID != 42 {
		t.Fatalf("expected session for user 42, got %d", sessions.lastUserID)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token != "freshtoken" {
		t.Fatalf("expected session token in response, got %q", body.Token)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	hash, err := utils.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	wrongPassword := &AuthHandler{
		users:    &stubUserStore{byEmail: &models.User{ID: 42, Email: "s@example.com", PasswordHash: hash, Role: "student"}},
		sessions: &stubSessionManager{token: "tok"},
	}
	unknownUser := &AuthHandler{
		users:    &stubUserStore{byEmailErr: pgx.ErrNoRows},
		sessions: &stubSessionManager{token: "tok"},
	}

	bodies := make([]string, 0, 2)
	for _, handler := range []*AuthHandler{wrongPassword, unknownUser} {
		app := newAuthTestApp(handler)
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", `{
			"email": "s@example.com",
			"password": "wrong-password"
		}`))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		bodies = append(bodies, string(raw))
	}

	if bodies[0] != bodies[1] {
		t.Fatalf("wrong-password and unknown-user responses differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestLoginIssuesSession(t *testing.T) {
	hash, err := utils.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	sessions := &stubSessionManager{token: "logintoken"}
	handler := &AuthHandler{
		users:    &stubUserStore{byEmail: &models.User{ID: 42, Email: "s@example.com", PasswordHash: hash, Role: "student"}},
		sessions: sessions,
	}
	app := newAuthTestApp(handler)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", `{
		"email": "s@example.com",
		"password": "correct-password"
	}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if sessions.lastUserID != 42 {
		t.Fatalf("expected session for user 42, got %d", sessions.lastUserID)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	sessions := &stubSessionManager{}
	handler := &AuthHandler{users: &stubUserStore{}, sessions: sessions}
	app := newAuthTestApp(handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if sessions.destroyedToken != "livetoken" {
		t.Fatalf("expected the bearer token destroyed, got %q", sessions.destroyedToken)
	}
}

func TestMeReturnsCurrentUser(t *testing.T) {
	handler := &AuthHandler{
		users:    &stubUserStore{byID: &models.User{ID: 42, Email: "s@example.com", Role: "student"}},
		sessions: &stubSessionManager{},
	}
	app := newAuthTestApp(handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.ID != 42 || body.User.Role != "student" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
}
