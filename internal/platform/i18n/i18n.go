// Package i18n declares the two languages the portal serves and helpers to
// pick one from request data.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported two-letter language code.
type Language string

const (
	// Vietnamese is the portal's primary language.
	Vietnamese Language = "vi"
	// English is the portal's secondary language.
	English Language = "en"
)

var supportedTags = []language.Tag{
	language.Make("vi"),
	language.Make("en"),
}

var matcher = language.NewMatcher(supportedTags)

// Default returns the fallback language used when no preference is known.
func Default() Language {
	return Vietnamese
}

// Supported returns the closed set of served languages, default first.
func Supported() []Language {
	return []Language{Vietnamese, English}
}

// Parse maps a raw path or cookie value onto a supported language.
func Parse(value string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(Vietnamese):
		return Vietnamese, true
	case string(English):
		return English, true
	}
	return "", false
}

// String returns the two-letter code.
func (l Language) String() string {
	return string(l)
}

// Other returns the translation sibling language.
func (l Language) Other() Language {
	if l == English {
		return Vietnamese
	}
	return English
}

// Tag returns the x/text tag for the language.
func (l Language) Tag() language.Tag {
	if l == English {
		return supportedTags[1]
	}
	return supportedTags[0]
}

// MatchAcceptLanguage maps an Accept-Language header onto a supported
// language. The bool is false when the header is absent, malformed, or
// matches neither language.
func MatchAcceptLanguage(header string) (Language, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return "", false
	}
	if idx == 1 {
		return English, true
	}
	return Vietnamese, true
}
