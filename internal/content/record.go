// Package content is the read-only client for the remote content repository.
//
// The repository stores two language variants of each logical article. The
// variants share an internal sequence id assigned by the repository; the id
// is treated as an opaque join key here.
package content

import (
	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// Record is one content item in one language.
type Record struct {
	// Key is the repository's canonical identifier for the record.
	Key string
	// InternalSequenceID joins the vi and en variants of one logical
	// article. Opaque; never derived or mutated locally.
	InternalSequenceID int64
	Title              string
	// PathAlias is the editor-assigned SEO path, site-relative with a
	// leading slash and no language prefix. Empty when unset.
	PathAlias string
	Language  i18n.Language
	// Body is the repository-rendered rich-text HTML.
	Body string
}

// Summary is the listing projection used by the fuzzy resolution strategies.
type Summary struct {
	Key       string
	Title     string
	PathAlias string
}
