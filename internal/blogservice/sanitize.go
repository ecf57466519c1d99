package blogservice

import "regexp"

func sanitizeBody(body string) string {
	scriptTagPattern := regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)
	return scriptTagPattern.ReplaceAllString(body, "")
}
