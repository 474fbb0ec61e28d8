// Package api serves GET /api, a catalogue of the public endpoints.
package api

import (
	"net/http"

	"nc-news/internal/handler/http/respond"
)

// Endpoint describes one public route.
type Endpoint struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
	Body        []string `json:"body,omitempty"`
}

// Endpoints is keyed by "METHOD /path", the same pattern syntax the mux uses.
var Endpoints = map[string]Endpoint{
	"GET /api": {
		Description: "serves this description of every available endpoint",
	},
	"GET /topics": {
		Description: "serves an array of all topics",
	},
	"POST /topics": {
		Description: "creates a topic; description defaults to the slug",
		Body:        []string{"slug", "description"},
	},
	"GET /articles": {
		Description: "serves a page of articles with comment counts and the total matching the filters",
		Queries:     []string{"author", "topic", "sort_by", "order", "limit", "p"},
	},
	"POST /articles": {
		Description: "creates an article; article_img_url is optional",
		Body:        []string{"author", "title", "body", "topic", "article_img_url"},
	},
	"GET /articles/{article_id}": {
		Description: "serves an article with its body and comment count",
	},
	"PATCH /articles/{article_id}": {
		Description: "adds inc_votes to the article's votes and replaces body, title or topic",
		Body:        []string{"inc_votes", "body", "title", "topic"},
	},
	"DELETE /articles/{article_id}": {
		Description: "deletes an article together with its comments",
	},
	"GET /articles/{article_id}/comments": {
		Description: "serves a page of the article's comments, newest first",
		Queries:     []string{"sort_by", "order", "limit", "p"},
	},
	"POST /articles/{article_id}/comments": {
		Description: "adds a comment to the article",
		Body:        []string{"username", "body"},
	},
	"GET /comments/{comment_id}": {
		Description: "serves a single comment",
	},
	"PATCH /comments/{comment_id}": {
		Description: "adds inc_votes to the comment's votes and replaces its body",
		Body:        []string{"inc_votes", "body"},
	},
	"DELETE /comments/{comment_id}": {
		Description: "deletes a comment",
	},
	"GET /users": {
		Description: "serves an array of all users",
	},
	"POST /users": {
		Description: "creates a user; avatar_url is optional",
		Body:        []string{"username", "name", "avatar_url"},
	},
	"GET /users/{username}": {
		Description: "serves a single user",
	},
}

type Handler struct{}

// ServeHTTP returns the endpoint catalogue.
// @Summary      Endpoint catalogue
// @Tags         api
// @Produce      json
// @Success      200 {object} map[string]Endpoint
// @Router       /api [get]
func (Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, Endpoints)
}

// Register registers GET /api with the given mux.
func Register(mux *http.ServeMux) {
	mux.Handle("GET /api", Handler{})
}
