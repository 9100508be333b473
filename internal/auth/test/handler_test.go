package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookworm-labs/book-review-hub/internal/auth"
	"github.com/bookworm-labs/book-review-hub/pkg/database"
	"github.com/bookworm-labs/book-review-hub/pkg/logger"
	"github.com/bookworm-labs/book-review-hub/pkg/models"
	"github.com/bookworm-labs/book-review-hub/pkg/utils"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func setupAuthTest(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Init(logger.ERROR, false, nil)

	tmpDir := t.TempDir()
	if err := database.InitDatabase(tmpDir + "/test.db"); err != nil {
		t.Fatalf("init db: %v", err)
	}

	handler := auth.NewHandler(testSecret)

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)

	protected := router.Group("")
	protected.Use(auth.AuthMiddleware(testSecret))
	{
		protected.POST("/auth/change-password", handler.ChangePassword)
		protected.GET("/whoami", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
		})
	}

	return router, func() { database.Close() }
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	resp := doJSON(t, router, "POST", "/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password1",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var reg models.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if reg.Token == "" || reg.UserID == "" {
		t.Fatalf("register response missing token or user id: %+v", reg)
	}

	resp = doJSON(t, router, "POST", "/auth/login", "", models.LoginRequest{
		Username: "alice",
		Password: "Password1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var login models.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Fatalf("login user id %s does not match registered %s", login.UserID, reg.UserID)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Password1"}
	if resp := doJSON(t, router, "POST", "/auth/register", "", req); resp.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.Code)
	}

	req.Email = "other@example.com"
	resp := doJSON(t, router, "POST", "/auth/register", "", req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	resp := doJSON(t, router, "POST", "/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "weakpass",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", resp.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	doJSON(t, router, "POST", "/auth/register", "", models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "Password1",
	})

	resp := doJSON(t, router, "POST", "/auth/login", "", models.LoginRequest{
		Username: "alice", Password: "Password2",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.Code)
	}
}

func TestAuthMiddleware_RejectsMissingAndInvalidTokens(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddleware_ResolvesIdentity(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	token, err := utils.GenerateJWT("u42", "alice", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var out map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["user_id"] != "u42" {
		t.Fatalf("expected resolved user u42, got %s", out["user_id"])
	}
}

func TestChangePassword(t *testing.T) {
	router, cleanup := setupAuthTest(t)
	defer cleanup()

	resp := doJSON(t, router, "POST", "/auth/register", "", models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "Password1",
	})
	var reg models.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}

	resp = doJSON(t, router, "POST", "/auth/change-password", reg.Token, map[string]string{
		"current_password": "Password1",
		"new_password":     "Password2",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("change password: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, "POST", "/auth/login", "", models.LoginRequest{
		Username: "alice", Password: "Password2",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login with new password: expected 200, got %d", resp.Code)
	}

	resp = doJSON(t, router, "POST", "/auth/login", "", models.LoginRequest{
		Username: "alice", Password: "Password1",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("login with old password: expected 401, got %d", resp.Code)
	}
}
