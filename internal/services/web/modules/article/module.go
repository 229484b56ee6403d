// Package article serves the portal's article routes: language home pages
// and identifier resolution with canonical redirects.
package article

import (
	"net/http"

	module "github.com/dseza/portal/internal/services/web/module"
	"github.com/dseza/portal/internal/services/web/routepath"
)

// Module provides the article routes.
type Module struct {
	gateway Gateway
}

// New returns an article module backed by the given content gateway.
func New(gateway Gateway) Module {
	return Module{gateway: gateway}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "article"
}

// Mount wires the article routes under the application root.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway)))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
