package pathutil

import "strings"

// Unmatched is the label for paths that match no route.
const Unmatched = "other"

// routes lists every served path template. A "{name}" segment matches any
// single non-empty segment.
var routes = [][]string{
	split("/api"),
	split("/articles"),
	split("/articles/{article_id}"),
	split("/articles/{article_id}/comments"),
	split("/comments/{comment_id}"),
	split("/topics"),
	split("/users"),
	split("/users/{username}"),
	split("/health"),
	split("/ready"),
	split("/live"),
	split("/metrics"),
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// NormalizePath folds a request path into the route template it would be
// served by, so metric labels stay bounded. The query string and a trailing
// slash are ignored; anything under /swagger/ is "/swagger"; paths no route
// matches are reported as Unmatched.
//
//	NormalizePath("/articles/123")          // "/articles/{article_id}"
//	NormalizePath("/articles/abc/comments") // "/articles/{article_id}/comments"
//	NormalizePath("/wp-login.php")          // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if path == "/swagger" || strings.HasPrefix(path, "/swagger/") {
		return "/swagger"
	}

	segs := split(path)
	for _, route := range routes {
		if matches(route, segs) {
			return "/" + strings.Join(route, "/")
		}
	}
	return Unmatched
}

func matches(route, segs []string) bool {
	if len(route) != len(segs) {
		return false
	}
	for i, want := range route {
		if segs[i] == "" {
			return false
		}
		if want[0] != '{' && want != segs[i] {
			return false
		}
	}
	return true
}
