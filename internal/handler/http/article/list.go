package article

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"nc-news/internal/apperror"
	"nc-news/internal/common/pagination"
	"nc-news/internal/handler/http/respond"
	"nc-news/internal/observability/logging"
	"nc-news/internal/repository"
	artUC "nc-news/internal/usecase/article"
)

const resourceName = "articles"

type ListHandler struct {
	Svc           artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists articles.
// @Summary      List articles
// @Description  Lists articles with comment counts. Filters by topic and author, sorts by any article column or comment_count, and paginates with limit and p. A limit of 0, "infinity" or "none" disables the cap.
// @Tags         articles
// @Produce      json
// @Param        sort_by query string false "Sort column" default(created_at)
// @Param        order   query string false "asc or desc" default(desc)
// @Param        topic   query string false "Topic slug"
// @Param        author  query string false "Author username"
// @Param        limit   query string false "Page size" default(10)
// @Param        p       query string false "Page number (1-based)" default(1)
// @Success      200 {object} ListResponse
// @Failure      400 {object} respond.Envelope
// @Failure      404 {object} respond.Envelope "Unknown topic or author"
// @Failure      500 {object} respond.Envelope
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(r.Context(), logger)

	q := r.URL.Query()
	limit, page := h.PaginationCfg.Tokens(q)
	params := repository.ArticleListParams{
		SortBy: queryOr(q.Has("sort_by"), q.Get("sort_by"), "created_at"),
		Order:  queryOr(q.Has("order"), q.Get("order"), "desc"),
		Topic:  filterValue(q, "topic"),
		Author: filterValue(q, "author"),
		Limit:  limit,
		Page:   page,
	}

	result, err := h.Svc.List(r.Context(), params)
	if err != nil {
		if apperror.IsBadRequest(err) {
			pagination.RecordError("validation")
			pagination.LogError(logger, resourceName, limit, page, err)
		}
		respond.Error(w, r, err)
		return
	}

	items := make([]ListItemDTO, 0, len(result.Articles))
	for _, a := range result.Articles {
		items = append(items, toListItem(a))
	}

	window, _ := pagination.Resolve(limit, page)
	duration := time.Since(start)
	pagination.RecordRequest(resourceName, http.StatusOK, window)
	pagination.RecordDuration(resourceName, "handler", duration.Seconds())
	pagination.UpdateTotalCount(resourceName, result.TotalCount)
	pagination.LogResponse(logger, resourceName, window, len(items), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, ListResponse{Articles: items, TotalCount: result.TotalCount})
}

// queryOr returns v when the parameter was sent, even if empty, and def otherwise.
func queryOr(present bool, v, def string) string {
	if present {
		return v
	}
	return def
}

// filterValue is nil only when key is absent. An empty value is still a
// filter and fails the existence check like any unknown value.
func filterValue(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}
