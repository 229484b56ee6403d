// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"

	i18n "github.com/dseza/portal/internal/platform/i18n"
)

type contextKey int

const (
	languageKey contextKey = iota
	visitorIDKey
)

// WithLanguage returns ctx enriched with the request's effective language.
func WithLanguage(ctx context.Context, lang i18n.Language) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// Language returns the request's effective language; the bool is false when
// the language normalizer has not run.
func Language(ctx context.Context) (i18n.Language, bool) {
	lang, ok := ctx.Value(languageKey).(i18n.Language)
	return lang, ok
}

// WithVisitorID returns ctx enriched with the visitor id.
func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	if visitorID == "" {
		return ctx
	}
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// VisitorID returns the visitor id when present.
func VisitorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorIDKey).(string)
	return id, ok
}
