package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/dseza/portal/internal/platform/i18n"
)

func TestHomePageRendersLanguageCopy(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := HomePage(i18n.English).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, `<html lang="en">`) {
		t.Fatalf("missing lang attribute: %s", html)
	}
	if !strings.Contains(html, englishCopy.SiteName) {
		t.Fatalf("missing site name: %s", html)
	}
}

func TestArticlePageEscapesTitleAndKeepsBodyMarkup(t *testing.T) {
	t.Parallel()

	view := ArticleView{
		Title:         "Thu hút đầu tư <2026>",
		BodyHTML:      "<p>Nội dung <strong>chính</strong></p>",
		CanonicalPath: "/vi/bai-viet/thu-hut-dau-tu",
		SiblingURL:    "/en/investment-attraction",
		Lang:          i18n.Vietnamese,
	}
	var sb strings.Builder
	if err := ArticlePage(view).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, "Thu hút đầu tư &lt;2026&gt;") {
		t.Fatalf("title not escaped: %s", html)
	}
	if !strings.Contains(html, "<p>Nội dung <strong>chính</strong></p>") {
		t.Fatalf("body markup lost: %s", html)
	}
	if !strings.Contains(html, `<link rel="canonical" href="/vi/bai-viet/thu-hut-dau-tu">`) {
		t.Fatalf("missing canonical link: %s", html)
	}
	if !strings.Contains(html, `href="/en/investment-attraction"`) {
		t.Fatalf("missing sibling link: %s", html)
	}
}

func TestNotFoundPageShowsIdentifierAndHomeLink(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := NotFoundPage(NotFoundView{Identifier: "some/old/path", Lang: i18n.Vietnamese}).Render(context.Background(), &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := sb.String()
	if !strings.Contains(html, vietnameseCopy.NotFoundTitle) {
		t.Fatalf("missing not-found title: %s", html)
	}
	if !strings.Contains(html, "some/old/path") {
		t.Fatalf("missing identifier: %s", html)
	}
	if !strings.Contains(html, `href="/vi"`) {
		t.Fatalf("missing home link: %s", html)
	}
}
