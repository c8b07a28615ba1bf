// Vote HTTP handler.
//
// Exposes POST /messages/:id/vote. Voting toggles: the same direction twice
// retracts the vote, the opposite direction switches it. The handler only
// validates the payload shape; toggle semantics live in the store.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neuralbrew/go-brew-backend/internal/services"
)

// VoteRequest is the JSON payload for voting on a message.
type VoteRequest struct {
	// Username identifies the voter. It must be non-empty.
	Username string `json:"username" binding:"required,min=1" example:"neo"`
	// VoteType is the direction, "up" or "down".
	VoteType string `json:"voteType" binding:"required" example:"up"`
}

// VoteResponse acknowledges an applied vote and carries the updated counter.
type VoteResponse struct {
	Success bool `json:"success"`
	Votes   int  `json:"votes"`
}

// VoteMessage applies a vote to the message in the :id path parameter.
//
// Responses:
//   - 400 bad_request when the username is missing or voteType is not
//     "up"/"down"
//   - 500 not_found when the message does not exist
//   - 500 vote_failed on storage errors
func (h *Handlers) VoteMessage(c *gin.Context) {
	messageID := c.Param("id")

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and voteType required")
		return
	}

	votes, err := h.chatSvc.Vote(c.Request.Context(), messageID, req.Username, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVote):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "voteType must be 'up' or 'down'")
		case errors.Is(err, services.ErrMessageNotFound):
			fail(c, http.StatusInternalServerError, ErrCodeNotFound, "message not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeVoteFailed, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, VoteResponse{Success: true, Votes: votes})
}
