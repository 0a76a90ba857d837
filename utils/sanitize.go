package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user-supplied HTML in posting descriptions and comment
// bodies to prevent XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
