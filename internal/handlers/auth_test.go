package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasknest/backend/internal/handlers"
	"tasknest/backend/internal/models"
	"tasknest/backend/internal/services"
	"tasknest/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockAuthService struct {
	registerErr error
	loginErr    error
	user        *models.User
}

func (m *MockAuthService) RegisterUser(db *gorm.DB, email, password, name string) (*models.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.user, nil
}

func (m *MockAuthService) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.user, nil
}

func setupAuthHandler() (*MockAuthService, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	mockService := &MockAuthService{
		user: &models.User{
			ID:    uuid.Must(uuid.NewV4()),
			Email: "a@x.com",
			Name:  "A",
		},
	}

	codec := token.NewCodec("test-secret", time.Hour)
	handler := handlers.NewAuthHandler(nil, mockService, codec, 7*24*time.Hour)

	router := gin.New()
	router.POST("/api/auth/register", handler.Register)
	router.POST("/api/auth/login", handler.Login)
	router.POST("/api/auth/logout", handler.Logout)

	return mockService, router
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	_, router := setupAuthHandler()

	body, _ := json.Marshal(map[string]string{
		"email": "a@x.com", "password": "pw", "name": "A",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	cookie := sessionCookie(w.Result())
	if cookie == nil {
		t.Fatal("Expected session cookie to be set")
	}
	if cookie.Value == "" {
		t.Error("Expected non-empty session token")
	}
	if !cookie.HttpOnly {
		t.Error("Expected session cookie to be HttpOnly")
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected 7-day max age, got %d", cookie.MaxAge)
	}

	var resp struct {
		User handlers.UserResponse `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("Expected email a@x.com, got %s", resp.User.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockService, router := setupAuthHandler()
	mockService.registerErr = services.ErrEmailTaken

	body, _ := json.Marshal(map[string]string{
		"email": "a@x.com", "password": "pw", "name": "A",
	})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	mockService, router := setupAuthHandler()
	mockService.registerErr = services.ErrMissingFields

	body, _ := json.Marshal(map[string]string{"email": "a@x.com"})
	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRegisterInvalidJSON(t *testing.T) {
	_, router := setupAuthHandler()

	req, _ := http.NewRequest("POST", "/api/auth/register", bytes.NewBuffer([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	_, router := setupAuthHandler()

	body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "pw"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if cookie := sessionCookie(w.Result()); cookie == nil || cookie.Value == "" {
		t.Error("Expected session cookie to be set on login")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	mockService, router := setupAuthHandler()
	mockService.loginErr = services.ErrInvalidCredentials

	body, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "wrong"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	if cookie := sessionCookie(w.Result()); cookie != nil {
		t.Error("Expected no session cookie on failed login")
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	_, router := setupAuthHandler()

	body, _ := json.Marshal(map[string]string{"email": "a@x.com"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	_, router := setupAuthHandler()

	req, _ := http.NewRequest("POST", "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	cookie := sessionCookie(w.Result())
	if cookie == nil {
		t.Fatal("Expected an expiring session cookie")
	}
	if cookie.Value != "" {
		t.Errorf("Expected empty cookie value, got %q", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("Expected immediately-expiring cookie, got max age %d", cookie.MaxAge)
	}
}
