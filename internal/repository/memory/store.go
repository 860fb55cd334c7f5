// Package memory provides an in-process ScheduleStore used when no MongoDB
// URI is configured, and by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

type archivedDocument struct {
	Document   models.ScheduleDocument
	ArchivedAt time.Time
}

// Store keeps every venue document in a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]models.ScheduleDocument
	archived map[string][]archivedDocument
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs:     make(map[string]models.ScheduleDocument),
		archived: make(map[string][]archivedDocument),
	}
}

// Load returns the venue's document, or an empty one for unknown venues.
func (s *Store) Load(_ context.Context, venue string) (models.ScheduleDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[venue]
	if !ok {
		return models.NewScheduleDocument(), nil
	}
	return cloneDocument(doc), nil
}

// Save replaces the venue's document.
func (s *Store) Save(_ context.Context, venue string, doc models.ScheduleDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[venue] = cloneDocument(doc)
	return nil
}

// Archive snapshots the venue's current document.
func (s *Store) Archive(_ context.Context, venue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[venue]
	if !ok || len(doc.Reservations) == 0 {
		return nil
	}
	s.archived[venue] = append(s.archived[venue], archivedDocument{
		Document:   cloneDocument(doc),
		ArchivedAt: time.Now().UTC(),
	})
	return nil
}

// Venues lists known venues in stable order.
func (s *Store) Venues(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venues := make([]string, 0, len(s.docs))
	for venue := range s.docs {
		venues = append(venues, venue)
	}
	sort.Strings(venues)
	return venues, nil
}

// ArchivedCount reports how many snapshots exist for a venue.
func (s *Store) ArchivedCount(venue string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.archived[venue])
}

// cloneDocument keeps callers from mutating stored state through shared
// slices and maps.
func cloneDocument(doc models.ScheduleDocument) models.ScheduleDocument {
	out := models.ScheduleDocument{
		Reservations: make([]models.Reservation, len(doc.Reservations)),
		Validations:  make(models.Validations, len(doc.Validations)),
	}
	copy(out.Reservations, doc.Reservations)
	for id, marks := range doc.Validations {
		cloned := make(map[string]bool, len(marks))
		for category, v := range marks {
			cloned[category] = v
		}
		out.Validations[id] = cloned
	}
	return out
}
