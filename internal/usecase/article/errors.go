// Package article provides the use cases of the article resource: listing
// with filters and pagination, lookup, creation, patching and deletion.
package article

import "nc-news/internal/apperror"

// ErrInvalidArticleID is reported when an article id path segment is not an integer.
var ErrInvalidArticleID = apperror.BadRequest("Invalid article_id")
