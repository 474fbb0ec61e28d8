package comment

import (
	"log/slog"
	"net/http"

	"nc-news/internal/common/pagination"
	comUC "nc-news/internal/usecase/comment"
)

// Register registers the comment handlers with the given mux.
func Register(mux *http.ServeMux, svc comUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles/{article_id}/comments", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("POST /articles/{article_id}/comments", CreateHandler{svc})
	mux.Handle("GET /comments/{comment_id}", GetHandler{svc})
	mux.Handle("PATCH /comments/{comment_id}", UpdateHandler{svc})
	mux.Handle("DELETE /comments/{comment_id}", DeleteHandler{svc})
}
