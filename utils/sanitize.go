package utils

import "github.com/microcosm-cc/bluemonday"

// Posts and comments are plain text; strip all HTML from submissions.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize cleans submitted content to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
