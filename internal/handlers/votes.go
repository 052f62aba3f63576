package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/forum-backend/internal/middleware"
	"github.com/emilythestrangee/forum-backend/internal/models"
	"github.com/emilythestrangee/forum-backend/internal/voting"
)

type VoteHandler struct {
	engine *voting.Engine
}

func NewVoteHandler(engine *voting.Engine) *VoteHandler {
	return &VoteHandler{engine: engine}
}

// VotePost reconciles a vote on a post.
func (h *VoteHandler) VotePost(c *gin.Context) {
	h.castVote(c, models.TargetPost, c.Param("postId"))
}

// VoteComment reconciles a vote on a comment.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	h.castVote(c, models.TargetComment, c.Param("commentId"))
}

func (h *VoteHandler) castVote(c *gin.Context, kind models.TargetKind, rawID string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	targetID, err := parseID(rawID)
	if err != nil {
		validationError(c, err)
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	_, err = h.engine.CastVote(c.Request.Context(), user.ID, kind, targetID, input.Type)
	switch {
	case errors.Is(err, voting.ErrNotFound):
		badRequest(c)
	case errors.Is(err, voting.ErrAlreadyVoted):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Already voted"})
	case err != nil:
		internalError(c)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// HasVoted reports whether the authenticated user has voted on the
// given post or comment, and which way.
func (h *VoteHandler) HasVoted(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		badRequest(c)
		return
	}

	contentID, err := parseID(c.Param("contentId"))
	if err != nil {
		validationError(c, err)
		return
	}

	var input models.HasVotedRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	status, err := h.engine.HasVoted(c.Request.Context(), user.ID, input.Type, contentID)
	if err != nil {
		if errors.Is(err, voting.ErrNotFound) {
			badRequest(c)
			return
		}
		internalError(c)
		return
	}

	var voteType interface{}
	if status.Voted {
		voteType = status.Type
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hasVoted": status.Voted, "type": voteType})
}
