// Package app composes the web service from its modules and platform
// pieces and owns the server lifecycle.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	i18n "github.com/dseza/portal/internal/platform/i18n"
	"github.com/dseza/portal/internal/services/web/module"
	weberrors "github.com/dseza/portal/internal/services/web/platform/errors"
	"github.com/dseza/portal/internal/services/web/platform/httpx"
	"github.com/dseza/portal/internal/services/web/platform/langroute"
	"github.com/dseza/portal/internal/services/web/routepath"
	"github.com/dseza/portal/internal/services/web/storage"
)

// HealthCheck reports whether an upstream dependency is reachable.
type HealthCheck func(context.Context) error

// Compose builds the root HTTP handler: health outside the language
// prefix, every module behind the normalizer, recovery and request logging
// outermost. A nil health check makes the health endpoint report liveness
// only.
func Compose(modules []module.Module, normalizer *langroute.Normalizer, health HealthCheck) (http.Handler, error) {
	inner := http.NewServeMux()
	seen := make(map[string]string)
	for _, feature := range modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := feature.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if prefix == "" {
			prefix = routepath.Root
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		inner.Handle(prefix, mount.Handler)
	}

	var localized http.Handler = inner
	if normalizer != nil {
		localized = normalizer.Wrap(inner)
	}

	root := http.NewServeMux()
	root.Handle(routepath.Healthz, httpx.Chain(healthHandler(health), httpx.RequireMethod(http.MethodGet)))
	root.Handle(routepath.Root, localized)

	return httpx.Chain(root, httpx.Recover(), httpx.RequestLog()), nil
}

func healthHandler(health HealthCheck) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				log.Printf("health check: %v", err)
				failure := weberrors.E(weberrors.KindUnavailable, "content repository unreachable")
				http.Error(w, failure.Error(), weberrors.HTTPStatus(failure))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// storePreferences adapts the persistence contract to the normalizer's
// preference seam.
type storePreferences struct {
	store storage.Store
}

// NewStorePreferences returns a langroute preference source backed by store.
func NewStorePreferences(store storage.Store) langroute.Preferences {
	return storePreferences{store: store}
}

func (p storePreferences) Language(ctx context.Context, visitorID string) (i18n.Language, bool, error) {
	pref, ok, err := p.store.GetVisitorPreference(ctx, visitorID)
	if err != nil || !ok {
		return "", false, err
	}
	lang, valid := i18n.Parse(pref.Language)
	if !valid {
		return "", false, nil
	}
	return lang, true, nil
}

func (p storePreferences) SetLanguage(ctx context.Context, visitorID string, lang i18n.Language) error {
	return p.store.PutVisitorPreference(ctx, storage.VisitorPreference{
		VisitorID: visitorID,
		Language:  lang.String(),
		SeenAt:    time.Now(),
	})
}
