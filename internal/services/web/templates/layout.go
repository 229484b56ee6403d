package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/services/web/routepath"
)

// Layout wraps a page body in the shared document chrome.
type Layout struct {
	// Title is the document title, rendered with the site name suffix.
	Title string
	// Lang sets the document language attribute.
	Lang i18n.Language
	// CanonicalPath emits a canonical link element when set.
	CanonicalPath string
	// Description emits a meta description when set.
	Description string
}

// Page renders the full HTML document around body.
func (l Layout) Page(body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		loc := For(l.Lang)
		title := loc.SiteName
		if l.Title != "" {
			title = l.Title + " | " + loc.SiteName
		}

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang=%q><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`, l.Lang); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<title>%s</title>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if l.Description != "" {
			if _, err := fmt.Fprintf(w, `<meta name="description" content=%q>`, l.Description); err != nil {
				return err
			}
		}
		if l.CanonicalPath != "" {
			if _, err := fmt.Fprintf(w, `<link rel="canonical" href=%q>`, l.CanonicalPath); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</head><body><header><a href=%q>%s</a></header><main>`, routepath.LanguageHome(l.Lang.String()), templ.EscapeString(loc.SiteName)); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
