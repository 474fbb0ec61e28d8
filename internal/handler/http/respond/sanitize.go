package respond

import "regexp"

type redaction struct {
	pattern *regexp.Regexp
	repl    string
}

// redactions mask credentials that database drivers echo back in errors.
var redactions = []redaction{
	// postgres://app:secret@db:5432/nc_news
	{regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`), "://$1:****@"},
	// password=secret in keyword DSNs and URL query strings, PGPASSWORD=secret
	{regexp.MustCompile(`(?i)(password=)([^\s&]+)`), "${1}****"},
}

// SanitizeError returns err's message with connection secrets masked, for
// logs and health output. A nil error yields "".
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, r := range redactions {
		msg = r.pattern.ReplaceAllString(msg, r.repl)
	}
	return msg
}
