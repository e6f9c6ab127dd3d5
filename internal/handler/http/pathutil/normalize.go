package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route onto its metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns is evaluated in order; static siblings such as
// /api/users/discover are listed before the catch-all they would match.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/newsletters/[^/]+$`), Template: "/api/newsletters/:id"},
	{Pattern: regexp.MustCompile(`^/api/users/discover$`), Template: "/api/users/discover"},
	{Pattern: regexp.MustCompile(`^/api/users/[^/]+$`), Template: "/api/users/:id"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath collapses ids in dynamic routes so metric labels and span
// names stay low-cardinality. Query strings and a trailing slash are dropped;
// unknown paths are returned unchanged.
//
//	NormalizePath("/api/newsletters/3f0c…")  // "/api/newsletters/:id"
//	NormalizePath("/api/users/alice")        // "/api/users/:id"
//	NormalizePath("/api/users/discover")     // "/api/users/discover"
//	NormalizePath("/api/feed?page=2")        // "/api/feed"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
