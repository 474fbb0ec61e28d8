package article

import (
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/respond"
	artUC "nc-news/internal/usecase/article"
)

type GetHandler struct{ Svc artUC.Service }

// ServeHTTP returns one article.
// @Summary      Get article
// @Description  Returns the article with its body and comment count.
// @Tags         articles
// @Produce      json
// @Param        article_id path int true "Article ID"
// @Success      200 {object} Response
// @Failure      400 {object} respond.Envelope "Invalid article_id"
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /articles/{article_id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("article_id"))
	if err != nil {
		respond.Error(w, r, artUC.ErrInvalidArticleID)
		return
	}

	article, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Article: toDTO(article)})
}
