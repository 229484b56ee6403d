package resolve

import (
	"strings"

	content "github.com/dseza/portal/internal/content"
	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// ArticleSegment is the path segment used for keyed canonical URLs when a
// record has no path alias.
const ArticleSegment = "article"

// BuildCanonicalURL returns the single preferred path for a record in a
// language: the language-prefixed alias when one exists, otherwise the
// keyed article path. Deterministic by construction; redirect-loop safety
// depends on it.
func BuildCanonicalURL(lang i18n.Language, rec content.Record) string {
	alias := strings.TrimSpace(rec.PathAlias)
	if alias != "" {
		return "/" + lang.String() + "/" + strings.TrimLeft(alias, "/")
	}
	return "/" + lang.String() + "/" + ArticleSegment + "/" + rec.Key
}
