package comment

import (
	"net/http"

	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	artUC "nc-news/internal/usecase/article"
	comUC "nc-news/internal/usecase/comment"
)

// CreateRequest is the body of POST /articles/{article_id}/comments.
type CreateRequest struct {
	Username string `json:"username" example:"butter_bridge"`
	Body     string `json:"body" example:"This morning, I showered for nine minutes."`
}

type CreateHandler struct{ Svc comUC.Service }

// ServeHTTP posts a comment on an article.
// @Summary      Create comment
// @Description  Adds a comment to an article. Nothing is stored when the article or the user does not exist.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        article_id path int true "Article ID"
// @Param        comment body CreateRequest true "New comment"
// @Success      201 {object} Response
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /articles/{article_id}/comments [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ParseID(r.PathValue("article_id"))
	if err != nil {
		respond.Error(w, r, artUC.ErrInvalidArticleID)
		return
	}

	var req CreateRequest
	if err := payload.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.Svc.Create(r.Context(), comUC.CreateInput{
		ArticleID: articleID,
		Username:  req.Username,
		Body:      req.Body,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, Response{Comment: toDTO(c)})
}
