package comment

import (
	"log/slog"
	"net/http"
	"time"

	"nc-news/internal/apperror"
	"nc-news/internal/common/pagination"
	"nc-news/internal/handler/http/pathutil"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/observability/logging"
	"nc-news/internal/repository"
	artUC "nc-news/internal/usecase/article"
	comUC "nc-news/internal/usecase/comment"
)

const resourceName = "comments"

type ListHandler struct {
	Svc           comUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists the comments of an article.
// @Summary      List article comments
// @Description  Lists the comments of an article, newest first by default. An existing article without comments yields an empty array.
// @Tags         comments
// @Produce      json
// @Param        article_id path  int    true  "Article ID"
// @Param        sort_by    query string false "Sort column" default(created_at)
// @Param        order      query string false "asc or desc" default(desc)
// @Param        limit      query string false "Page size" default(10)
// @Param        p          query string false "Page number (1-based)" default(1)
// @Success      200 {object} ListResponse
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope
// @Failure      500 {object} respond.Envelope
// @Router       /articles/{article_id}/comments [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(r.Context(), logger)

	articleID, err := pathutil.ParseID(r.PathValue("article_id"))
	if err != nil {
		respond.Error(w, r, artUC.ErrInvalidArticleID)
		return
	}

	q := r.URL.Query()
	limit, page := h.PaginationCfg.Tokens(q)
	params := repository.CommentListParams{
		ArticleID: articleID,
		SortBy:    "created_at",
		Order:     "desc",
		Limit:     limit,
		Page:      page,
	}
	if q.Has("sort_by") {
		params.SortBy = q.Get("sort_by")
	}
	if q.Has("order") {
		params.Order = q.Get("order")
	}

	comments, err := h.Svc.ListByArticle(r.Context(), params)
	if err != nil {
		if apperror.IsBadRequest(err) {
			pagination.RecordError("validation")
			pagination.LogError(logger, resourceName, limit, page, err)
		}
		respond.Error(w, r, err)
		return
	}

	out := make([]DTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toDTO(c))
	}

	window, _ := pagination.Resolve(limit, page)
	duration := time.Since(start)
	pagination.RecordRequest(resourceName, http.StatusOK, window)
	pagination.RecordDuration(resourceName, "handler", duration.Seconds())
	pagination.LogResponse(logger, resourceName, window, len(out), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, ListResponse{Comments: out})
}
