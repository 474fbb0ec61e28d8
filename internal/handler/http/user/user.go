// Package user provides the HTTP handlers of the /users resource.
package user

import (
	"net/http"

	"nc-news/internal/domain/entity"
	"nc-news/internal/handler/http/payload"
	"nc-news/internal/handler/http/respond"
	userUC "nc-news/internal/usecase/user"
)

type DTO struct {
	Username  string `json:"username" example:"butter_bridge"`
	Name      string `json:"name" example:"jonny"`
	AvatarURL string `json:"avatar_url" example:"https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"`
}

type ListResponse struct {
	Users []DTO `json:"users"`
}

type Response struct {
	User DTO `json:"user"`
}

type CreateRequest struct {
	Username  string `json:"username" example:"lurker"`
	Name      string `json:"name" example:"do_nothing"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func toDTO(u *entity.User) DTO {
	return DTO{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}

type ListHandler struct{ Svc userUC.Service }

// ServeHTTP lists all users.
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200 {object} ListResponse
// @Failure      500 {object} respond.Envelope
// @Router       /users [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	out := make([]DTO, 0, len(users))
	for _, u := range users {
		out = append(out, toDTO(u))
	}
	respond.JSON(w, http.StatusOK, ListResponse{Users: out})
}

type GetHandler struct{ Svc userUC.Service }

// ServeHTTP returns one user.
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} Response
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /users/{username} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Response{User: toDTO(u)})
}

type CreateHandler struct{ Svc userUC.Service }

// ServeHTTP creates a user.
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user body CreateRequest true "New user"
// @Success      201 {object} Response
// @Failure      400 {object} respond.Envelope "Missing field or duplicate username"
// @Failure      500 {object} respond.Envelope
// @Router       /users [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := payload.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	u, err := h.Svc.Create(r.Context(), userUC.CreateInput{
		Username:  req.Username,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, Response{User: toDTO(u)})
}

// Register registers the user handlers with the given mux.
func Register(mux *http.ServeMux, svc userUC.Service) {
	mux.Handle("GET /users", ListHandler{svc})
	mux.Handle("POST /users", CreateHandler{svc})
	mux.Handle("GET /users/{username}", GetHandler{svc})
}
