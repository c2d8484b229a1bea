package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middlewares.
const (
	ctxCallerID   = "callerID"
	ctxCallerType = "callerType"
)

// bearerToken extracts the token from the Authorization header, or from the
// "token" query parameter for WebSocket clients that cannot set headers.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("token")
}

func (h *Handler) parseToken(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token required")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func (h *Handler) authenticate(c *gin.Context, wantType string) bool {
	claims, err := h.parseToken(bearerToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			apiResponse{Success: false, Message: "Invalid or expired token"})
		return false
	}

	callerType, _ := claims["type"].(string)
	if wantType != "" && callerType != wantType {
		message := "Invalid token type"
		if wantType == "admin" {
			message = "Admin access required"
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			apiResponse{Success: false, Message: message})
		return false
	}

	id, _ := claims["id"].(string)
	c.Set(ctxCallerID, id)
	c.Set(ctxCallerType, callerType)
	return true
}

// AuthenticateUser admits citizen tokens only.
func (h *Handler) AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authenticate(c, "user") {
			c.Next()
		}
	}
}

// AuthenticateAdmin admits admin tokens only.
func (h *Handler) AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authenticate(c, "admin") {
			c.Next()
		}
	}
}

// AuthenticateAny admits any valid token.
func (h *Handler) AuthenticateAny() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.authenticate(c, "") {
			c.Next()
		}
	}
}
