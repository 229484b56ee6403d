// Package langroute normalizes incoming paths onto a language prefix.
//
// Every served URL is /{vi|en}/…; requests without a recognized prefix are
// redirected to the same path with one prepended, chosen by stored
// preference, then Accept-Language, then the Vietnamese default. The
// redirect preserves the query string unchanged; fragments never reach the
// server and are re-applied by the browser after the redirect.
package langroute

import (
	"context"
	"log"
	"net/http"
	"strings"

	i18n "github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/services/web/platform/visitorcookie"
	"github.com/dseza/portal/internal/services/web/platform/webctx"
	"github.com/dseza/portal/internal/services/web/routepath"
)

// Preferences persists each visitor's last-seen language.
type Preferences interface {
	Language(ctx context.Context, visitorID string) (i18n.Language, bool, error)
	SetLanguage(ctx context.Context, visitorID string, lang i18n.Language) error
}

// Normalizer is the language route middleware.
type Normalizer struct {
	prefs Preferences
}

// New returns a Normalizer backed by the given preference store. A nil
// store disables persistence; Accept-Language and the default still apply.
func New(prefs Preferences) *Normalizer {
	return &Normalizer{prefs: prefs}
}

// Wrap returns a handler that normalizes the language prefix before
// delegating to next.
func (n *Normalizer) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorID := visitorcookie.Ensure(w, r)

		if lang, ok := firstSegmentLanguage(r.URL.Path); ok {
			n.recordPreference(r.Context(), visitorID, lang)
			ctx := webctx.WithLanguage(r.Context(), lang)
			ctx = webctx.WithVisitorID(ctx, visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		lang := n.preferredLanguage(r, visitorID)
		target := routepath.LanguageHome(lang.String())
		if trimmed := strings.Trim(r.URL.Path, "/"); trimmed != "" {
			target += "/" + trimmed
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		// Redirects replace the attempted navigation rather than adding
		// a history entry for the non-canonical URL.
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func firstSegmentLanguage(path string) (i18n.Language, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	return i18n.Parse(segment)
}

// preferredLanguage picks the language for prefixless requests: stored
// preference, then the browser's Accept-Language, then the default.
func (n *Normalizer) preferredLanguage(r *http.Request, visitorID string) i18n.Language {
	if n.prefs != nil && visitorID != "" {
		lang, ok, err := n.prefs.Language(r.Context(), visitorID)
		if err != nil {
			log.Printf("language preference lookup: %v", err)
		} else if ok {
			return lang
		}
	}
	if lang, ok := i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return lang
	}
	return i18n.Default()
}

// recordPreference stores the visited language, last-seen-wins. Failures
// are logged and do not affect the request.
func (n *Normalizer) recordPreference(ctx context.Context, visitorID string, lang i18n.Language) {
	if n.prefs == nil || visitorID == "" {
		return
	}
	if err := n.prefs.SetLanguage(ctx, visitorID, lang); err != nil {
		log.Printf("language preference store: %v", err)
	}
}
