package article

import (
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/respond"
	artUC "nc-news/internal/usecase/article"
)

type DeleteHandler struct{ Svc artUC.Service }

// ServeHTTP deletes an article and its comments.
// @Summary      Delete article
// @Tags         articles
// @Param        article_id path int true "Article ID"
// @Success      204 "No Content"
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /articles/{article_id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("article_id"))
	if err != nil {
		respond.Error(w, r, artUC.ErrInvalidArticleID)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}
