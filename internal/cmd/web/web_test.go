package web

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.StoragePath != "portal.db" {
		t.Fatalf("storage path = %q", cfg.StoragePath)
	}
}

func TestParseConfigFlagsOverride(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-http-addr", "0.0.0.0:9000",
		"-content-base-url", "https://cms.example.vn",
		"-storage-path", "",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" {
		t.Fatalf("http addr = %q", cfg.HTTPAddr)
	}
	if cfg.ContentBaseURL != "https://cms.example.vn" {
		t.Fatalf("content base url = %q", cfg.ContentBaseURL)
	}
	if cfg.StoragePath != "" {
		t.Fatalf("storage path = %q", cfg.StoragePath)
	}
}
