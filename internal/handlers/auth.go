package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"tasknest/backend/internal/middleware"
	"tasknest/backend/internal/models"
	"tasknest/backend/internal/services"
	"tasknest/backend/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService services.AuthService
	codec       *token.Codec
	sessionTTL  time.Duration
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewAuthHandler(db *gorm.DB, authService services.AuthService, codec *token.Codec, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		db:          db,
		authService: authService,
		codec:       codec,
		sessionTTL:  sessionTTL,
	}
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", false, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request format",
		})
		return
	}

	user, err := h.authService.RegisterUser(h.db, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "missing_fields",
				"message": "Missing required fields",
			})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "email_taken",
				"message": "User already exists",
			})
		default:
			log.Printf("registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Internal server error",
			})
		}
		return
	}

	tokenStr, err := h.codec.Issue(user.ID)
	if err != nil {
		log.Printf("token issue error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Internal server error",
		})
		return
	}

	h.setSessionCookie(c, tokenStr, int(h.sessionTTL.Seconds()))
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request format",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_fields",
			"message": "Missing credentials",
		})
		return
	}

	user, err := h.authService.LoginUser(h.db, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "Invalid credentials",
			})
			return
		}
		log.Printf("login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Internal server error",
		})
		return
	}

	tokenStr, err := h.codec.Issue(user.ID)
	if err != nil {
		log.Printf("token issue error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Internal server error",
		})
		return
	}

	h.setSessionCookie(c, tokenStr, int(h.sessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Check runs behind RequireSession, so reaching it means the cookie held a
// valid token.
func (h *AuthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Authenticated"})
}
