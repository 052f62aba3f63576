package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/forum-backend/internal/authz"
	"github.com/emilythestrangee/forum-backend/internal/middleware"
	"github.com/emilythestrangee/forum-backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

func commentResponse(comment *models.Comment) gin.H {
	return gin.H{
		"_id":        comment.ID,
		"post_id":    comment.PostID,
		"body":       comment.Body,
		"score":      comment.Score,
		"user":       comment.User.Public(),
		"created_at": comment.CreatedAt,
		"updated_at": comment.UpdatedAt,
	}
}

// CreateComment creates a comment on a post and attaches it to the
// post's comment list.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	postID, err := parseID(c.Param("postId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	comment := models.Comment{
		Body:   input.Body,
		PostID: post.ID,
		UserID: user.ID,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		internalError(c)
		return
	}

	comment.User = *user
	c.JSON(http.StatusOK, gin.H{"success": true, "comment": commentResponse(&comment)})
}

// UpdateComment edits a comment. Author or admin only; others get the
// generic rejection.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	commentID, err := parseID(c.Param("commentId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	if !authz.CanEdit(user, comment.UserID) {
		badRequest(c)
		return
	}

	comment.Body = input.Body
	if err := h.db.Save(&comment).Error; err != nil {
		internalError(c)
		return
	}

	h.db.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "comment": commentResponse(&comment)})
}

// DeleteComment removes a comment from its post. Admin only. Deleting
// the row detaches it from the post's comment list in the same write.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	commentID, err := parseID(c.Param("commentId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	if !authz.CanDelete(user) {
		badRequest(c)
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
