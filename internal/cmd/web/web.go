// Package web parses configuration and runs the portal web service.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/dseza/portal/internal/platform/config"
	"github.com/dseza/portal/internal/platform/otel"
	"github.com/dseza/portal/internal/services/web/app"
)

// Config holds the web command configuration. Environment variables
// provide defaults; flags override.
type Config struct {
	HTTPAddr       string `env:"DSEZA_PORTAL_HTTP_ADDR" envDefault:"localhost:8080"`
	ContentBaseURL string `env:"DSEZA_PORTAL_CONTENT_BASE_URL"`
	StoragePath    string `env:"DSEZA_PORTAL_STORAGE_PATH" envDefault:"portal.db"`
}

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.ContentBaseURL, "content-base-url", cfg.ContentBaseURL, "content repository base URL")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "SQLite path for visitor preferences (empty disables)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "portal-web")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	server, err := app.NewServer(app.Config{
		HTTPAddr:       cfg.HTTPAddr,
		ContentBaseURL: cfg.ContentBaseURL,
		StoragePath:    cfg.StoragePath,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
