// Package pagination turns limit/page query tokens into a bounded window over
// an ordered result set, including the sentinel tokens that disable the cap.
package pagination

import (
	"net/url"
	"strconv"
)

// Query parameter names read by Config.Tokens.
const (
	LimitParam = "limit"
	PageParam  = "p"
)

// Config holds pagination defaults applied when a request omits a token.
type Config struct {
	DefaultLimit int `yaml:"default_limit"` // Items per page when "limit" is absent (typically 10)
	DefaultPage  int `yaml:"default_page"`  // Page when "p" is absent (typically 1)
}

// DefaultConfig returns the default pagination configuration: limit=10, page=1.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 10,
		DefaultPage:  1,
	}
}

// Tokens returns the raw limit and page tokens of q, substituting defaults
// for missing or empty values. The tokens are not validated here.
func (c Config) Tokens(q url.Values) (limit, page string) {
	limit = q.Get(LimitParam)
	if limit == "" {
		limit = strconv.Itoa(c.DefaultLimit)
	}
	page = q.Get(PageParam)
	if page == "" {
		page = strconv.Itoa(c.DefaultPage)
	}
	return limit, page
}
