package article

import (
	"context"
	"testing"

	i18n "github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/resolve"
)

func TestControllerPerVisitor(t *testing.T) {
	t.Parallel()

	svc := newService(bilingualGateway())
	a := svc.controllerFor("visitor-a")
	if svc.controllerFor("visitor-a") != a {
		t.Fatal("same visitor got a new controller")
	}
	if svc.controllerFor("visitor-b") == a {
		t.Fatal("distinct visitors share a controller")
	}
}

func TestControllerMapResetsAtBound(t *testing.T) {
	t.Parallel()

	svc := newService(bilingualGateway())
	svc.mu.Lock()
	for i := 0; i < maxControllers; i++ {
		svc.controllers[string(rune(i))+"-filler"] = nil
	}
	svc.mu.Unlock()

	svc.controllerFor("fresh-visitor")
	svc.mu.Lock()
	size := len(svc.controllers)
	svc.mu.Unlock()
	if size != 1 {
		t.Fatalf("controllers after reset = %d, want 1", size)
	}
}

func TestResolvePublishesOutcome(t *testing.T) {
	t.Parallel()

	svc := newService(bilingualGateway())
	outcome, ok := svc.Resolve(context.Background(), "visitor-a", keyVI, i18n.Vietnamese)
	if !ok {
		t.Fatal("cycle superseded unexpectedly")
	}
	if outcome.State != resolve.StateResolved {
		t.Fatalf("state = %v", outcome.State)
	}
	if outcome.Result.CanonicalURL != "/vi/thu-hut-dau-tu" {
		t.Fatalf("canonical = %q", outcome.Result.CanonicalURL)
	}
}

func TestArticleViewIncludesSibling(t *testing.T) {
	t.Parallel()

	gateway := bilingualGateway()
	svc := newService(gateway)
	rec := gateway.records[i18n.Vietnamese][keyVI]

	view := svc.ArticleView(context.Background(), i18n.Vietnamese, rec)
	if view.SiblingURL != "/en/investment-attraction" {
		t.Fatalf("sibling = %q", view.SiblingURL)
	}
	if view.CanonicalPath != "/vi/thu-hut-dau-tu" {
		t.Fatalf("canonical = %q", view.CanonicalPath)
	}
	if view.Excerpt == "" {
		t.Fatal("missing excerpt")
	}
}

func TestArticleViewWithoutSibling(t *testing.T) {
	t.Parallel()

	gateway := bilingualGateway()
	delete(gateway.records[i18n.English], keyEN)
	svc := newService(gateway)
	rec := gateway.records[i18n.Vietnamese][keyVI]

	if view := svc.ArticleView(context.Background(), i18n.Vietnamese, rec); view.SiblingURL != "" {
		t.Fatalf("sibling = %q, want empty", view.SiblingURL)
	}
}
