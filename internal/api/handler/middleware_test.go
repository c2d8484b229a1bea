package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan-549/CivicPulse/internal/config"
)

func newAuthTestRouter(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{JWTSecret: []byte("test-secret")}
	r := gin.New()
	r.GET("/user-only", h.AuthenticateUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"callerId": c.GetString(ctxCallerID)})
	})
	r.GET("/admin-only", h.AuthenticateAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"callerId": c.GetString(ctxCallerID)})
	})
	r.GET("/any", h.AuthenticateAny(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"callerType": c.GetString(ctxCallerType)})
	})
	return h, r
}

func TestGenerateToken_Roundtrip(t *testing.T) {
	h := &Handler{JWTSecret: []byte("test-secret")}

	token, err := h.generateToken("user-1", "citizen@example.com", "user", "")
	require.NoError(t, err)

	claims, err := h.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["id"])
	assert.Equal(t, "citizen@example.com", claims["email"])
	assert.Equal(t, "user", claims["type"])
	assert.Equal(t, config.TokenIssuer, claims["iss"])
	_, hasRole := claims["role"]
	assert.False(t, hasRole, "citizen tokens carry no role claim")
}

func TestGenerateToken_AdminRole(t *testing.T) {
	h := &Handler{JWTSecret: []byte("test-secret")}

	token, err := h.generateToken("admin-1", "ops@example.com", "admin", "superadmin")
	require.NoError(t, err)

	claims, err := h.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["type"])
	assert.Equal(t, "superadmin", claims["role"])
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	issuer := &Handler{JWTSecret: []byte("test-secret")}
	verifier := &Handler{JWTSecret: []byte("other-secret")}

	token, err := issuer.generateToken("user-1", "citizen@example.com", "user", "")
	require.NoError(t, err)

	_, err = verifier.parseToken(token)
	assert.Error(t, err)
}

func TestMiddleware_MissingToken(t *testing.T) {
	_, r := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user-only", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid or expired token", body.Message)
}

func TestMiddleware_GarbageToken(t *testing.T) {
	_, r := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_UserTokenOnAdminRoute(t *testing.T) {
	h, r := newAuthTestRouter(t)

	token, err := h.generateToken("user-1", "citizen@example.com", "user", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Admin access required", body.Message)
}

func TestMiddleware_AdmitsMatchingType(t *testing.T) {
	h, r := newAuthTestRouter(t)

	token, err := h.generateToken("admin-1", "ops@example.com", "admin", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-1")
}

func TestMiddleware_TokenFromQueryParam(t *testing.T) {
	h, r := newAuthTestRouter(t)

	token, err := h.generateToken("user-1", "citizen@example.com", "user", "")
	require.NoError(t, err)

	// WebSocket clients pass the token as a query parameter.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any?token="+token, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"callerType":"user"`)
}
