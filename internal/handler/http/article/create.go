package article

import (
	"net/http"

	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	artUC "nc-news/internal/usecase/article"
)

// CreateRequest is the body of POST /articles.
type CreateRequest struct {
	Author   string `json:"author" example:"butter_bridge"`
	Title    string `json:"title" example:"Living in the shadow of a great man"`
	Body     string `json:"body" example:"I find this existence challenging"`
	Topic    string `json:"topic" example:"mitch"`
	ImageURL string `json:"article_img_url,omitempty"`
}

type CreateHandler struct{ Svc artUC.Service }

// ServeHTTP creates an article.
// @Summary      Create article
// @Description  Creates an article. article_img_url defaults to a placeholder image.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        article body CreateRequest true "New article"
// @Success      201 {object} Response
// @Failure      400 {object} respond.Envelope "Missing required field"
// @Failure      404 {object} respond.Envelope "Unknown author or topic"
// @Failure      500 {object} respond.Envelope
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := payload.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Author:   req.Author,
		Title:    req.Title,
		Body:     req.Body,
		Topic:    req.Topic,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, Response{Article: toDTO(created)})
}
