package options

import (
	"strings"
	"unicode"
)

// ParseList splits a delimiter-separated text field (allowed tools, MCP
// config paths, plugin dirs, beta headers, extra dirs) into non-empty
// tokens. Commas and whitespace runs both delimit; blank input yields nil,
// never a single empty token.
func ParseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// FormatList renders a token list back into editable text.
func FormatList(items []string) string {
	return strings.Join(items, ", ")
}
