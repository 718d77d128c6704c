package auth

import "strings"

// PublicEndpoints lists routes served without a bearer token.
// Entries ending in '/' match by prefix, the rest match exactly
// (a trailing slash or query string is tolerated).
//
// Headlines are public: only favorites are user-scoped.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/categories",
	"/headlines/",
}

// IsPublicEndpoint reports whether path can be accessed anonymously.
//
//	IsPublicEndpoint("/health")             // true
//	IsPublicEndpoint("/health/detail")      // false
//	IsPublicEndpoint("/headlines/sports")   // true
//	IsPublicEndpoint("/favorites")          // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		rest, ok := strings.CutPrefix(path, endpoint)
		if ok && (rest == "" || rest == "/" || strings.HasPrefix(rest, "?")) {
			return true
		}
	}
	return false
}
