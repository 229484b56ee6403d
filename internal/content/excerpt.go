package content

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt reduces repository-rendered HTML to a plain-text snippet of at
// most maxRunes runes, truncated at a word boundary. Used for the page's
// meta description.
func Excerpt(bodyHTML string, maxRunes int) string {
	if maxRunes <= 0 || strings.TrimSpace(bodyHTML) == "" {
		return ""
	}

	var parts []string
	tokenizer := html.NewTokenizer(strings.NewReader(bodyHTML))
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return truncateWords(strings.Join(parts, " "), maxRunes)
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text != "" {
				parts = append(parts, strings.Join(strings.Fields(text), " "))
			}
		}
	}
}

func isSkippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func truncateWords(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	cut := string(runes[:maxRunes])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
