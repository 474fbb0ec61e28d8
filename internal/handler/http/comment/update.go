package comment

import (
	"encoding/json"
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/repository"
	comUC "nc-news/internal/usecase/comment"
)

// UpdateRequest is the body of PATCH /comments/{comment_id}.
type UpdateRequest struct {
	IncVotes json.RawMessage `json:"inc_votes,omitempty" swaggertype:"integer" example:"1"`
	Body     *string         `json:"body,omitempty"`
}

type UpdateHandler struct{ Svc comUC.Service }

// ServeHTTP patches a comment.
// @Summary      Update comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        comment_id path int true "Comment ID"
// @Param        patch body UpdateRequest true "Changes"
// @Success      200 {object} Response
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /comments/{comment_id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("comment_id"))
	if err != nil {
		respond.Error(w, r, comUC.ErrInvalidCommentID)
		return
	}

	var req UpdateRequest
	if err := payload.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	inc, err := payload.IncVotes(req.IncVotes)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.Svc.Update(r.Context(), id, repository.CommentPatch{IncVotes: inc, Body: req.Body})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Comment: toDTO(c)})
}
