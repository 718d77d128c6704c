package respond

import "regexp"

var (
	// ?apikey=... / &token=... (GNews, NewsAPI)
	queryKeyPattern = regexp.MustCompile(`(?i)([?&](?:api_?key|token)=)[^&\s"]+`)
	// Authorization / X-Api-Key header values echoed into errors
	headerKeyPattern = regexp.MustCompile(`(?i)((?:x-api-key|authorization):\s*(?:bearer\s+)?)\S+`)
	// user:password@ in DSNs and redis URLs
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]*):([^@\s]+)@`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = queryKeyPattern.ReplaceAllString(msg, "${1}****")
	msg = headerKeyPattern.ReplaceAllString(msg, "${1}****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
