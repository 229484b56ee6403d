package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dseza/portal/internal/content"
	"github.com/dseza/portal/internal/services/web/module"
	"github.com/dseza/portal/internal/services/web/modules/article"
	"github.com/dseza/portal/internal/services/web/platform/langroute"
	"github.com/dseza/portal/internal/services/web/storage"
	"github.com/dseza/portal/internal/services/web/storage/sqlite"
)

const shutdownGrace = 5 * time.Second

// Server hosts the composed web service.
type Server struct {
	httpServer *http.Server
	store      storage.Store
	contentAPI *content.Client
}

// NewServer wires the content client, preference store, and modules into a
// ready-to-run server.
func NewServer(cfg Config) (*Server, error) {
	contentAPI, err := content.New(content.Config{
		BaseURL:    cfg.ContentBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("init content client: %w", err)
	}

	var store storage.Store
	var prefs langroute.Preferences
	if cfg.StoragePath != "" {
		sqliteStore, err := sqlite.Open(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open preference store: %w", err)
		}
		store = sqliteStore
		prefs = NewStorePreferences(sqliteStore)
	}

	handler, err := Compose(
		[]module.Module{article.New(contentAPI)},
		langroute.New(prefs),
		contentAPI.Ping,
	)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8080"
	}
	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: handler},
		store:      store,
		contentAPI: contentAPI,
	}, nil
}

// ListenAndServe serves until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.warmSummaries(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	log.Printf("listening on %s", s.httpServer.Addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Close releases held resources. Safe after a failed or finished serve.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// warmSummaries prefetches both languages' bulk listings once at startup so
// the first fuzzy resolution does not pay for the full listing crawl.
func (s *Server) warmSummaries(ctx context.Context) {
	summaries, err := s.contentAPI.FetchAllSummariesBoth(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("summary warmup: %v", err)
		}
		return
	}
	total := 0
	for _, list := range summaries {
		total += len(list)
	}
	log.Printf("summary warmup: %d records across %d languages", total, len(summaries))
}
