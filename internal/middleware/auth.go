package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/emilythestrangee/forum-backend/internal/config"
	"github.com/emilythestrangee/forum-backend/internal/models"
)

const currentUserKey = "current_user"

// UserResolver turns the user id carried by a verified token into the
// full account record, including the fields hidden from serialization
// (admin flag in particular — handlers need it for authorization).
type UserResolver func(ctx context.Context, userID uint) (*models.User, error)

// Auth verifies the bearer token and resolves the acting user before
// the handler body runs. Missing, malformed or expired tokens and
// tokens for deleted accounts are all rejected the same way.
func Auth(cfg config.Config, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c)
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			abortUnauthorized(c)
			return
		}

		user, err := resolve(c.Request.Context(), uint(id))
		if err != nil || user == nil {
			abortUnauthorized(c)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthorized",
	})
}

// CurrentUser returns the user resolved by Auth for this request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	raw, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}
