// Package repository defines the persistence contract for per-venue
// schedule documents.
package repository

import (
	"context"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

// ScheduleStore persists one ScheduleDocument per opaque venue identifier.
// Load on an unknown venue returns an empty document, not an error: a venue
// without an ingested schedule is a normal state.
type ScheduleStore interface {
	Load(ctx context.Context, venue string) (models.ScheduleDocument, error)
	Save(ctx context.Context, venue string, doc models.ScheduleDocument) error
	// Archive snapshots the venue's current document so the nightly reset
	// does not lose the day's history.
	Archive(ctx context.Context, venue string) error
	// Venues lists every venue with a stored document, for scheduled jobs.
	Venues(ctx context.Context) ([]string, error)
}
