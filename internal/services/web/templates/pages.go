package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/services/web/routepath"
)

// ArticleView holds the rendered data for an article page.
type ArticleView struct {
	// Title is the article headline.
	Title string
	// BodyHTML is sanitized article markup from the content repository.
	BodyHTML string
	// Excerpt is a plain-text summary used for the meta description.
	Excerpt string
	// CanonicalPath is the article's canonical route.
	CanonicalPath string
	// SiblingURL links to the article translation when one exists.
	SiblingURL string
	// Lang is the page language.
	Lang i18n.Language
}

// NotFoundView holds the data for the article-not-found page.
type NotFoundView struct {
	// Identifier is the raw identifier the visitor requested.
	Identifier string
	// Attempted lists the lookup strategies that were tried, for
	// diagnostics.
	Attempted []string
	// Lang is the page language.
	Lang i18n.Language
}

// HomePage renders the language home page.
func HomePage(lang i18n.Language) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := For(lang)
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(loc.SiteName), templ.EscapeString(loc.HomeIntro))
		return err
	})
	return Layout{Title: For(lang).HomeTitle, Lang: lang}.Page(body)
}

// ArticlePage renders a resolved article.
func ArticlePage(view ArticleView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := For(view.Lang)
		if _, err := fmt.Fprintf(w, `<article><h1>%s</h1>`, templ.EscapeString(view.Title)); err != nil {
			return err
		}
		if view.SiblingURL != "" {
			if _, err := fmt.Fprintf(w, `<p><a href=%q rel="alternate">%s</a></p>`,
				view.SiblingURL, templ.EscapeString(loc.ReadInOther)); err != nil {
				return err
			}
		}
		// Body markup comes from the CMS editorial pipeline and is trusted.
		if err := templ.Raw(view.BodyHTML).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
	return Layout{
		Title:         view.Title,
		Lang:          view.Lang,
		CanonicalPath: view.CanonicalPath,
		Description:   view.Excerpt,
	}.Page(body)
}

// NotFoundPage renders the article-not-found page.
func NotFoundPage(view NotFoundView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := For(view.Lang)
		if _, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(loc.NotFoundTitle), templ.EscapeString(loc.NotFoundMessage)); err != nil {
			return err
		}
		if view.Identifier != "" {
			if _, err := fmt.Fprintf(w, `<p><small>%s: <code>%s</code></small></p>`,
				templ.EscapeString(loc.LookedUpAs), templ.EscapeString(view.Identifier)); err != nil {
				return err
			}
		}
		if len(view.Attempted) > 0 {
			if _, err := fmt.Fprintf(w, `<!-- attempted: %s -->`,
				templ.EscapeString(strings.Join(view.Attempted, ", "))); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<p><a href=%q>%s</a></p>`,
			routepath.LanguageHome(view.Lang.String()), templ.EscapeString(loc.BackHome))
		return err
	})
	return Layout{Title: For(view.Lang).NotFoundTitle, Lang: view.Lang}.Page(body)
}
