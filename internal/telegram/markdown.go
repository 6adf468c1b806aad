package telegram

import (
	"strings"
)

// MaxMessageLen is Telegram's limit for a message text, in characters.
const MaxMessageLen = 4096

const truncatedSuffix = "\n\n... (truncated)"

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes the characters that legacy Markdown parse mode
// treats as formatting.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// stripBackticks makes text safe inside an inline code span, where
// escaping is not supported.
func stripBackticks(text string) string {
	return strings.ReplaceAll(text, "`", "'")
}

// Truncate shortens text to at most maxLen characters, marking the cut.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	keep := maxLen - len([]rune(truncatedSuffix))
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + truncatedSuffix
}
