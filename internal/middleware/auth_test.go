package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/forum-backend/internal/config"
	"github.com/emilythestrangee/forum-backend/internal/models"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(cfg config.Config, resolve UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(cfg, resolve), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "user_id": user.ID})
	})
	return r
}

func TestAuthResolvesUser(t *testing.T) {
	cfg := testConfig()
	resolved := &models.User{ID: 42, Email: "a@example.com", IsAdmin: true}
	router := newAuthRouter(cfg, func(_ context.Context, id uint) (*models.User, error) {
		assert.Equal(t, uint(42), id)
		return resolved, nil
	})

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":    42,
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestAuthRejections(t *testing.T) {
	cfg := testConfig()
	router := newAuthRouter(cfg, func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 42}, nil
	})

	expired := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":  42,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"id":  42,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestAuthRejectsDeletedAccount(t *testing.T) {
	cfg := testConfig()
	router := newAuthRouter(cfg, func(context.Context, uint) (*models.User, error) {
		return nil, nil
	})

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":  42,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
