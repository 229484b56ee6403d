package article

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/dseza/portal/internal/content"
	"github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/resolve"
	"github.com/dseza/portal/internal/services/web/templates"
)

// excerptRunes caps the plain-text summary used for meta descriptions.
const excerptRunes = 200

// maxControllers bounds the per-visitor controller map. Crossing the bound
// drops every tracked cycle; in-flight requests still complete through the
// cycle handle they already hold.
const maxControllers = 4096

// Gateway is the content lookup surface the article module depends on.
type Gateway interface {
	resolve.Gateway
	FetchByInternalID(ctx context.Context, id int64, lang i18n.Language) (content.Record, error)
}

// Service resolves identifiers and assembles article views. Each visitor
// gets their own resolution controller so that a visitor's rapid
// navigations supersede one another without affecting anyone else.
type Service struct {
	gateway  Gateway
	resolver *resolve.Resolver

	mu          sync.Mutex
	controllers map[string]*resolve.Controller
}

func newService(gateway Gateway) *Service {
	return &Service{
		gateway:     gateway,
		resolver:    resolve.NewResolver(gateway),
		controllers: make(map[string]*resolve.Controller),
	}
}

// Resolve runs a resolution cycle for the visitor and blocks until it
// publishes an outcome or ctx ends. ok is false when the cycle was
// superseded by a newer navigation or the caller gave up.
func (s *Service) Resolve(ctx context.Context, visitorID, raw string, lang i18n.Language) (resolve.Outcome, bool) {
	cycle := s.controllerFor(visitorID).Begin(raw, lang)
	return cycle.Wait(ctx)
}

func (s *Service) controllerFor(visitorID string) *resolve.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.controllers) >= maxControllers {
		s.controllers = make(map[string]*resolve.Controller)
	}
	ctrl, ok := s.controllers[visitorID]
	if !ok {
		ctrl = resolve.NewController(s.resolver)
		s.controllers[visitorID] = ctrl
	}
	return ctrl
}

// ArticleView assembles the page view for a resolved record, including the
// translation link when the sibling record exists.
func (s *Service) ArticleView(ctx context.Context, lang i18n.Language, rec content.Record) templates.ArticleView {
	return templates.ArticleView{
		Title:         rec.Title,
		BodyHTML:      rec.Body,
		Excerpt:       content.Excerpt(rec.Body, excerptRunes),
		CanonicalPath: resolve.BuildCanonicalURL(lang, rec),
		SiblingURL:    s.siblingURL(ctx, lang, rec),
		Lang:          lang,
	}
}

// siblingURL looks up the record's translation in the other language. A
// missing or failed lookup hides the link rather than failing the page.
func (s *Service) siblingURL(ctx context.Context, lang i18n.Language, rec content.Record) string {
	if rec.InternalSequenceID == 0 {
		return ""
	}
	other := lang.Other()
	sibling, err := s.gateway.FetchByInternalID(ctx, rec.InternalSequenceID, other)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) && ctx.Err() == nil {
			log.Printf("sibling lookup nid=%d lang=%s: %v", rec.InternalSequenceID, other, err)
		}
		return ""
	}
	return resolve.BuildCanonicalURL(other, sibling)
}
