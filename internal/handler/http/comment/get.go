package comment

import (
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/respond"
	comUC "nc-news/internal/usecase/comment"
)

type GetHandler struct{ Svc comUC.Service }

// ServeHTTP returns one comment.
// @Summary      Get comment
// @Tags         comments
// @Produce      json
// @Param        comment_id path int true "Comment ID"
// @Success      200 {object} Response
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /comments/{comment_id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("comment_id"))
	if err != nil {
		respond.Error(w, r, comUC.ErrInvalidCommentID)
		return
	}

	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Comment: toDTO(c)})
}
