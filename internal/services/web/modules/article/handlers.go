package article

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/resolve"
	"github.com/dseza/portal/internal/services/web/platform/webctx"
	"github.com/dseza/portal/internal/services/web/templates"
)

type handlers struct {
	svc *Service
}

func newHandlers(svc *Service) handlers {
	return handlers{svc: svc}
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc("/", h.root)
}

// root serves every language-prefixed path: the bare prefix renders the
// home page, anything deeper is treated as an article identifier.
func (h handlers) root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	lang, ok := webctx.Language(r.Context())
	if !ok {
		lang = i18n.Default()
	}

	raw := identifierFromPath(r.URL.Path, lang)
	if raw == "" {
		h.renderPage(w, r, http.StatusOK, templates.HomePage(lang))
		return
	}

	visitorID, _ := webctx.VisitorID(r.Context())
	outcome, ok := h.svc.Resolve(r.Context(), visitorID, raw, lang)
	if !ok {
		if r.Context().Err() != nil {
			return
		}
		// A newer navigation from the same visitor superseded this one.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch outcome.State {
	case resolve.StateResolved:
		h.serveResolved(w, r, lang, outcome.Result)
	default:
		attempted := make([]string, 0, len(outcome.Result.Attempted))
		for _, strategy := range outcome.Result.Attempted {
			attempted = append(attempted, string(strategy))
		}
		h.renderPage(w, r, http.StatusNotFound, templates.NotFoundPage(templates.NotFoundView{
			Identifier: raw,
			Attempted:  attempted,
			Lang:       lang,
		}))
	}
}

func (h handlers) serveResolved(w http.ResponseWriter, r *http.Request, lang i18n.Language, result resolve.Result) {
	if result.CanonicalURL != "" {
		target := result.CanonicalURL
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		// Found rather than Moved Permanently so fuzzy matches are
		// re-resolved next time and the attempted URL never sticks in
		// caches.
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	view := h.svc.ArticleView(r.Context(), lang, *result.Record)
	h.renderPage(w, r, http.StatusOK, templates.ArticlePage(view))
}

func (h handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if err := page.Render(r.Context(), w); err != nil && r.Context().Err() == nil {
		// Headers are out; nothing better to do than log.
		log.Printf("render %s: %v", r.URL.Path, err)
	}
}

// identifierFromPath strips the language prefix and returns the raw
// identifier, decoded and without surrounding slashes.
func identifierFromPath(path string, lang i18n.Language) string {
	trimmed := strings.TrimPrefix(path, "/")
	trimmed = strings.TrimPrefix(trimmed, lang.String())
	return strings.Trim(trimmed, "/")
}
