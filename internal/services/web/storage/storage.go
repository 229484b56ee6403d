// Package storage defines persistence contracts for the web service.
//
// The only state the service persists is each visitor's last-seen language;
// content is always fetched fresh from the repository.
package storage

import (
	"context"
	"time"
)

// VisitorPreference stores one visitor's last-seen language.
type VisitorPreference struct {
	VisitorID string
	Language  string
	SeenAt    time.Time
}

// Store is the contract for visitor preference persistence.
type Store interface {
	Close() error
	GetVisitorPreference(ctx context.Context, visitorID string) (VisitorPreference, bool, error)
	PutVisitorPreference(ctx context.Context, pref VisitorPreference) error
}
