package article

import (
	"log/slog"
	"net/http"

	"nc-news/internal/common/pagination"
	artUC "nc-news/internal/usecase/article"
)

// Register registers the article handlers with the given mux.
func Register(mux *http.ServeMux, svc artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("GET /articles/{article_id}", GetHandler{svc})
	mux.Handle("PATCH /articles/{article_id}", UpdateHandler{svc})
	mux.Handle("DELETE /articles/{article_id}", DeleteHandler{svc})
}
