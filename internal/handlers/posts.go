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

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

// postResponse builds the serialized post with its owner projected
// down to the public fields. Don't serialize models.Post directly —
// a preloaded owner would render an empty user object instead of
// the projection.
func postResponse(post *models.Post) gin.H {
	resp := gin.H{
		"_id":        post.ID,
		"title":      post.Title,
		"body":       post.Body,
		"score":      post.Score,
		"user":       post.User.Public(),
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}
	if post.Comments != nil {
		comments := make([]gin.H, 0, len(post.Comments))
		for i := range post.Comments {
			comments = append(comments, commentResponse(&post.Comments[i]))
		}
		resp["comments"] = comments
	}
	return resp
}

// GetPosts returns all posts with their owners populated.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Preload("User").Order("created_at desc").Find(&posts).Error; err != nil {
		internalError(c)
		return
	}

	responses := make([]gin.H, 0, len(posts))
	for i := range posts {
		responses = append(responses, postResponse(&posts[i]))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": responses})
}

// GetPost returns a single post with owner and comments, each comment's
// owner populated too.
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseID(c.Param("postId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var post models.Post
	err = h.db.Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at asc")
		}).
		Preload("Comments.User").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": postResponse(&post)})
}

// CreatePost creates a new post owned by the authenticated user.
func (h *PostHandler) CreatePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	post := models.Post{
		Title:  input.Title,
		Body:   input.Body,
		UserID: user.ID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		internalError(c)
		return
	}

	post.User = *user
	c.JSON(http.StatusOK, gin.H{"success": true, "post": postResponse(&post)})
}

// UpdatePost edits a post. Permitted for the author or an admin; anyone
// else gets the same generic rejection a missing post would.
func (h *PostHandler) UpdatePost(c *gin.Context) {
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

	var input models.EditPostRequest
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

	if !authz.CanEdit(user, post.UserID) {
		badRequest(c)
		return
	}

	post.Title = input.Title
	post.Body = input.Body
	if err := h.db.Save(&post).Error; err != nil {
		internalError(c)
		return
	}

	h.db.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "post": postResponse(&post)})
}

// DeletePost deletes a post and cascades to its comments. Admin only.
// The cascade is two separate store calls; a failure in between leaves
// orphaned comments rather than rolling back the post delete.
func (h *PostHandler) DeletePost(c *gin.Context) {
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

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
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

	if err := h.db.Delete(&post).Error; err != nil {
		internalError(c)
		return
	}

	// Best-effort cascade. Votes on the post and its comments stay in
	// the ledger; they are only ever read by (kind, target id).
	h.db.Where("post_id = ?", post.ID).Delete(&models.Comment{})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
