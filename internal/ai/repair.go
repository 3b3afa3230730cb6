package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpenRe     = regexp.MustCompile("^```(?:json)?\\s*")
	fenceCloseRe    = regexp.MustCompile("\\s*```$")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// stripFences removes markdown code fencing the model sometimes wraps
// around its JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// repairJSON fixes the common model JSON defects: trailing commas before
// closing brackets and raw newlines inside string values. Returns the
// parsed object or nil when the payload stays unparseable.
func repairJSON(s string) map[string]any {
	fixed := trailingCommaRe.ReplaceAllString(s, "$1")
	fixed = escapeNewlinesInStrings(fixed)

	var out map[string]any
	if err := json.Unmarshal([]byte(fixed), &out); err != nil {
		return nil
	}
	return out
}

// escapeNewlinesInStrings walks the payload tracking whether the cursor is
// inside a string literal and escapes any raw newline found there.
func escapeNewlinesInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			b.WriteByte(c)
		case c == '\\' && inString:
			escaped = true
			b.WriteByte(c)
		case c == '"':
			inString = !inString
			b.WriteByte(c)
		case c == '\n' && inString:
			b.WriteString(`\n`)
		case c == '\r' && inString:
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
