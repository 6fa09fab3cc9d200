package ai

import "strings"

const assistantOpen = "<assistant>"

// CleanResponse turns a raw completion into the user-facing reply.
// Causal models echo the prompt before continuing, so everything up to
// and including the last assistant open tag is dropped, then any role
// tags the model emitted itself are stripped. Newlines are preserved.
func CleanResponse(raw string) string {
	segment := raw
	if idx := strings.LastIndex(raw, assistantOpen); idx >= 0 {
		segment = raw[idx+len(assistantOpen):]
	}
	return strings.TrimSpace(stripRoleTags(strings.TrimSpace(segment)))
}

// stripRoleTags removes system/user/assistant open and close tags.
// Only that fixed vocabulary is touched: <br> and any angle brackets in
// user content pass through untouched.
func stripRoleTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if n := roleTagLen(s[i:]); n > 0 {
				i += n
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// roleTagLen reports the length of the role tag at the start of s, or 0
// when s does not start with one. s always starts with '<'.
func roleTagLen(s string) int {
	j := 1
	if j < len(s) && s[j] == '/' {
		j++
	}
	name := j
	for j < len(s) && isTagChar(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return 0
	}
	switch s[name:j] {
	case "system", "user", "assistant":
		return j + 1
	}
	return 0
}

func isTagChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
