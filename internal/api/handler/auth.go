package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aaryan-549/CivicPulse/internal/config"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// generateToken issues a signed JWT carrying the caller's identity. The
// "type" claim distinguishes citizen tokens from admin tokens.
func (h *Handler) generateToken(id, email, callerType, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"type":  callerType,
		"exp":   time.Now().Add(config.TokenTTL).Unix(),
		"iss":   config.TokenIssuer,
	}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// RegisterUser creates a citizen account and returns a fresh token.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name, email, phone and password (min 6 chars) are required")
		return
	}

	existing, err := h.Store.FindUserByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		respondError(c, http.StatusBadRequest, "Email or phone already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	if err := h.Store.CreateUser(user); err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := h.generateToken(user.ID, user.Email, "user", "")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"user": user, "token": token}, "Registration successful")
}

// LoginUser authenticates a citizen by email and password.
func (h *Handler) LoginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.generateToken(user.ID, user.Email, "user", "")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"user": user, "token": token}, "Login successful")
}

// LoginAdmin authenticates a back-office operator.
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, err := h.Store.GetAdminByEmail(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}
	if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.generateToken(admin.ID, admin.Email, "admin", admin.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"admin": admin, "token": token}, "Login successful")
}

// RefreshToken re-issues a token with a fresh expiry from a still-valid one.
func (h *Handler) RefreshToken(c *gin.Context) {
	claims, err := h.parseToken(bearerToken(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	callerType, _ := claims["type"].(string)
	role, _ := claims["role"].(string)

	token, err := h.generateToken(id, email, callerType, role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"token": token}, "Token refreshed")
}
