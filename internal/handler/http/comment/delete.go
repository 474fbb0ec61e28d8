package comment

import (
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/respond"
	comUC "nc-news/internal/usecase/comment"
)

type DeleteHandler struct{ Svc comUC.Service }

// ServeHTTP deletes a comment.
// @Summary      Delete comment
// @Tags         comments
// @Param        comment_id path int true "Comment ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /comments/{comment_id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("comment_id"))
	if err != nil {
		respond.Error(w, r, comUC.ErrInvalidCommentID)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
