package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"taskhive-be/internal/jwt"
)

func setupAuthRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c)})
	})
	return router
}

func performGet(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := performGet(setupAuthRouter(jwtService), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	w := performGet(setupAuthRouter(jwtService), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	w := performGet(setupAuthRouter(jwtService), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	other := jwt.NewJWTService("other-secret", time.Hour)
	token, err := other.GenerateToken("user-1", "user@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	w := performGet(setupAuthRouter(jwtService), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
