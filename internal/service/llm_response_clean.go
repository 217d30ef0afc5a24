package service

import (
	"regexp"
	"strings"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```[a-z]*\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanGeneratedReply quita BOM y fences ``` ... ``` que algunos modelos agregan a texto plano.
func cleanGeneratedReply(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	// "Response:" cierra el prompt; algunos modelos lo repiten.
	s = strings.TrimSpace(strings.TrimPrefix(s, "Response:"))
	return s
}
