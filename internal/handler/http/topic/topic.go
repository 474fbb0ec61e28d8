// Package topic provides the HTTP handlers of the /topics resource.
package topic

import (
	"net/http"

	"nc-news/internal/domain/entity"
	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	topicUC "nc-news/internal/usecase/topic"
)

type DTO struct {
	Slug        string `json:"slug" example:"mitch"`
	Description string `json:"description" example:"The man, the Mitch, the legend"`
}

type ListResponse struct {
	Topics []DTO `json:"topics"`
}

type Response struct {
	Topic DTO `json:"topic"`
}

// CreateRequest is the body of POST /topics. Description defaults to the slug.
type CreateRequest struct {
	Slug        string `json:"slug" example:"dogs"`
	Description string `json:"description,omitempty" example:"Not cats"`
}

func toDTO(t *entity.Topic) DTO {
	return DTO{Slug: t.Slug, Description: t.Description}
}

type ListHandler struct{ Svc topicUC.Service }

// ServeHTTP lists all topics.
// @Summary      List topics
// @Tags         topics
// @Produce      json
// @Success      200 {object} ListResponse
// @Failure      500 {object} respond.Envelope
// @Router       /topics [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topics, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	out := make([]DTO, 0, len(topics))
	for _, t := range topics {
		out = append(out, toDTO(t))
	}
	respond.JSON(w, http.StatusOK, ListResponse{Topics: out})
}

type CreateHandler struct{ Svc topicUC.Service }

// ServeHTTP creates a topic.
// @Summary      Create topic
// @Tags         topics
// @Accept       json
// @Produce      json
// @Param        topic body CreateRequest true "New topic"
// @Success      201 {object} Response
// @Failure      400 {object} respond.Envelope "Missing slug or duplicate topic"
// @Failure      500 {object} respond.Envelope
// @Router       /topics [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := payload.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	t, err := h.Svc.Create(r.Context(), topicUC.CreateInput{Slug: req.Slug, Description: req.Description})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, Response{Topic: toDTO(t)})
}

// Register registers the topic handlers with the given mux.
func Register(mux *http.ServeMux, svc topicUC.Service) {
	mux.Handle("GET /topics", ListHandler{svc})
	mux.Handle("POST /topics", CreateHandler{svc})
}
