package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/forum-backend/internal/config"
	"github.com/emilythestrangee/forum-backend/internal/voting"
)

// Handler combines all handler types
type Handler struct {
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
	Vote    *VoteHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, cfg config.Config) *Handler {
	store := voting.NewStore(db)
	engine := voting.NewEngine(store, store)

	return &Handler{
		User:    NewUserHandler(db, cfg),
		Post:    NewPostHandler(db),
		Comment: NewCommentHandler(db),
		Vote:    NewVoteHandler(engine),
	}
}

// badRequest is the uniform rejection for missing resources and
// authorization failures alike: the caller can't tell them apart.
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Bad Request"})
}

func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Bad Request",
		"errors":  []string{err.Error()},
	})
}

// parseID parses a numeric route parameter.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal Server Error",
	})
}
