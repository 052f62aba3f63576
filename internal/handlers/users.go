package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/forum-backend/internal/config"
	"github.com/emilythestrangee/forum-backend/internal/middleware"
	"github.com/emilythestrangee/forum-backend/internal/models"
)

// bcryptCost matches the work factor the original accounts were hashed
// with; raising it would invalidate no hashes but slow registration.
const bcryptCost = 8

type UserHandler struct {
	db  *gorm.DB
	cfg config.Config
}

func NewUserHandler(db *gorm.DB, cfg config.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register creates an account. Duplicate emails are rejected with a
// conflict before any insert happens.
func (h *UserHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var existing models.User
	err := h.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Email already in use"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c)
		return
	}

	// Hash completes before anything is persisted.
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		internalError(c)
		return
	}

	user := models.User{
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Password:    string(hashed),
	}

	if err := h.db.Create(&user).Error; err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Login checks the presented password against the stored hash and
// issues a signed token. Unknown email and wrong password produce the
// same response so the two cases can't be told apart.
func (h *UserHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			invalidCredentials(c)
			return
		}
		internalError(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		invalidCredentials(c)
		return
	}

	// Comparison succeeded; only now is a token issued.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(h.cfg.TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenString,
		"user": gin.H{
			"_id":         user.ID,
			"displayName": user.DisplayName,
			"email":       user.Email,
		},
	})
}

func invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid credentials"})
}

// GetOwnProfile returns the authenticated user's full profile,
// including the fields hidden from other users.
func (h *UserHandler) GetOwnProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": user.Own()})
}

// GetProfile returns another user's public projection: display name
// and bio only, never email or the admin flag.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": user.Public()})
}

// EditProfile updates the acting user's display name and bio. Only the
// owner can change these; email, password and the admin flag are not
// editable here.
func (h *UserHandler) EditProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	var input models.EditProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	updates := map[string]interface{}{
		"display_name": input.DisplayName,
		"bio":          input.Bio,
	}
	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		internalError(c)
		return
	}

	user.DisplayName = input.DisplayName
	user.Bio = input.Bio
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": user.Own()})
}
