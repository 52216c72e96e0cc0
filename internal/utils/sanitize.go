package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeUserContent strips dangerous markup from user-supplied body text
// (post content, comments) while keeping ordinary formatting.
func SanitizeUserContent(s string) string {
	return ugcPolicy.Sanitize(s)
}

// SanitizePlain strips all markup. Used for titles and profile fields that
// are rendered as plain text.
func SanitizePlain(s string) string {
	return strictPolicy.Sanitize(s)
}
