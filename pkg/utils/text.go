package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// RE2's \S and \w are ASCII only; these classes follow Unicode whitespace and word characters.
	urlPattern       = regexp.MustCompile(`(?:http|www|https)[^\s\p{Z}\x{85}\v\x{1C}-\x{1F}]+`)
	subredditPattern = regexp.MustCompile(`r/[\p{L}\p{N}_]+`)
	userPattern      = regexp.MustCompile(`u/[\p{L}\p{N}_]+`)
	emojiPattern     = regexp.MustCompile(`[` +
		`\x{1F600}-\x{1F64F}` + // emoticons
		`\x{1F300}-\x{1F5FF}` + // symbols & pictographs
		`\x{1F680}-\x{1F6FF}` + // transport & map
		`\x{1F1E0}-\x{1F1FF}` + // flags
		`\x{2702}-\x{27B0}` + // dingbats
		`\x{24C2}-\x{1F251}` + // enclosed characters
		`\x{1F900}-\x{1F9FF}` + // supplemental symbols
		`\x{1FA00}-\x{1FA6F}` + // chess symbols
		`\x{2600}-\x{26FF}` + // misc symbols
		`\x{2700}-\x{27BF}` +
		`]+`)
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?'\-$%]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizePostText strips links, subreddit and user references, emoji and
// punctuation outside the allowed set, then collapses whitespace.
func NormalizePostText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := urlPattern.ReplaceAllString(raw, "")
	text = subredditPattern.ReplaceAllString(text, "")
	text = userPattern.ReplaceAllString(text, "")
	text = emojiPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Truncate returns the first max runes of text followed by suffix, or text
// unchanged when it is not longer than max runes.
func Truncate(text string, max int, suffix string) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + suffix
}
