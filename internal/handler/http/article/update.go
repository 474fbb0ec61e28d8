package article

import (
	"encoding/json"
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/repository"
	artUC "nc-news/internal/usecase/article"
)

// UpdateRequest is the body of PATCH /articles/{article_id}. Unknown
// properties are ignored.
type UpdateRequest struct {
	IncVotes json.RawMessage `json:"inc_votes,omitempty" swaggertype:"integer" example:"1"`
	Body     *string         `json:"body,omitempty"`
	Title    *string         `json:"title,omitempty"`
	Topic    *string         `json:"topic,omitempty"`
}

type UpdateHandler struct{ Svc artUC.Service }

// ServeHTTP patches an article.
// @Summary      Update article
// @Description  Adds inc_votes to the vote count and replaces body, title or topic. A body without any of these returns the article unchanged.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article_id path int true "Article ID"
// @Param        patch body UpdateRequest true "Changes"
// @Success      200 {object} Response
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /articles/{article_id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("article_id"))
	if err != nil {
		respond.Error(w, r, artUC.ErrInvalidArticleID)
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

	updated, err := h.Svc.Update(r.Context(), id, repository.ArticlePatch{
		IncVotes: inc,
		Body:     req.Body,
		Title:    req.Title,
		Topic:    req.Topic,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Article: toDTO(updated)})
}
