// Package schedule orchestrates ingestion, edits and views of per-venue
// reservation documents around the pure extraction engine.
package schedule

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/partyops/jumpkitchen/internal/domain/models"
	"github.com/partyops/jumpkitchen/internal/extraction"
	"github.com/partyops/jumpkitchen/internal/pdf"
	"github.com/partyops/jumpkitchen/internal/repository"
	"github.com/partyops/jumpkitchen/pkg/clients/notify"
)

// ErrNotFound indicates the reservation ID does not exist for the venue.
var ErrNotFound = errors.New("reservation not found")

// ErrExportNotConfigured indicates no spreadsheet export target is set up.
var ErrExportNotConfigured = errors.New("schedule export is not configured")

// Exporter pushes a venue's document to an external catering sheet.
type Exporter interface {
	ExportSchedule(ctx context.Context, venue string, doc models.ScheduleDocument) error
}

// KitchenView is the kitchen-facing subset: pending reservations in serving
// order, plus the validation marks for them.
type KitchenView struct {
	Reservations []models.Reservation `json:"reservations"`
	Validations  models.Validations   `json:"validations"`
}

// Service wires the extraction engine to storage and collaborators. The
// engine stays pure; the service serializes read-modify-write cycles per
// venue so concurrent edits do not lose updates.
type Service struct {
	store      repository.ScheduleStore
	extractor  *extraction.Extractor
	textSource pdf.Extractor
	exporter   Exporter
	notifier   notify.Notifier
	kitchenCap int
	logger     *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService constructs the schedule service. Exporter may be nil when the
// sheets export is not configured; notifier defaults to a no-op.
func NewService(store repository.ScheduleStore, extractor *extraction.Extractor, textSource pdf.Extractor, exporter Exporter, notifier notify.Notifier, kitchenCap int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if kitchenCap < 1 {
		kitchenCap = 10
	}
	return &Service{
		store:      store,
		extractor:  extractor,
		textSource: textSource,
		exporter:   exporter,
		notifier:   notifier,
		kitchenCap: kitchenCap,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// venueLock returns the mutex serializing writes for one venue.
func (s *Service) venueLock(venue string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[venue]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[venue] = lock
	}
	return lock
}

// Ingest extracts the schedule from the uploaded document and atomically
// replaces the venue's reservation list, clearing validation marks. It
// returns the number of reservations found; zero is a valid outcome.
func (s *Service) Ingest(ctx context.Context, venue string, source io.ReaderAt, size int64) (int, error) {
	text, err := s.textSource.ExtractText(ctx, source, size)
	if err != nil {
		return 0, err
	}

	records := s.extractor.Extract(text)

	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	doc := models.NewScheduleDocument()
	doc.Reservations = records
	if err := s.store.Save(ctx, venue, doc); err != nil {
		return 0, err
	}

	s.logger.Info("schedule ingested",
		zap.String("venue", venue),
		zap.Int("reservations", len(records)))

	s.fireNotification(venue, notify.KindIngested, len(records))
	return len(records), nil
}

// Document returns the venue's full persisted document.
func (s *Service) Document(ctx context.Context, venue string) (models.ScheduleDocument, error) {
	return s.store.Load(ctx, venue)
}

// Kitchen returns the pending reservations ordered by meal time, capped to
// the configured count, together with the validation marks.
func (s *Service) Kitchen(ctx context.Context, venue string) (KitchenView, error) {
	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return KitchenView{}, err
	}

	active := make([]models.Reservation, 0, len(doc.Reservations))
	for _, r := range doc.Reservations {
		if !r.Done {
			active = append(active, r)
		}
	}
	// Ingestion already orders by meal time, but edits may have moved it.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].MealTime < active[j].MealTime
	})
	if len(active) > s.kitchenCap {
		active = active[:s.kitchenCap]
	}

	return KitchenView{Reservations: active, Validations: doc.Validations}, nil
}

// Update applies a partial overwrite to one reservation and re-derives the
// quantity fields when the headcount or pizza extra changed.
func (s *Service) Update(ctx context.Context, venue, id string, update models.ReservationUpdate) (models.Reservation, error) {
	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return models.Reservation{}, err
	}

	idx := doc.FindReservation(id)
	if idx < 0 {
		return models.Reservation{}, ErrNotFound
	}

	doc.Reservations[idx] = extraction.Recompute(doc.Reservations[idx], update)
	if err := s.store.Save(ctx, venue, doc); err != nil {
		return models.Reservation{}, err
	}
	return doc.Reservations[idx], nil
}

// MarkDone flags a reservation as completed by the kitchen.
func (s *Service) MarkDone(ctx context.Context, venue, id string) error {
	done := true
	_, err := s.Update(ctx, venue, id, models.ReservationUpdate{Done: &done})
	return err
}

// Delete removes a reservation and its validation marks.
func (s *Service) Delete(ctx context.Context, venue, id string) error {
	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return err
	}

	idx := doc.FindReservation(id)
	if idx < 0 {
		return ErrNotFound
	}

	doc.Reservations = append(doc.Reservations[:idx], doc.Reservations[idx+1:]...)
	delete(doc.Validations, id)
	return s.store.Save(ctx, venue, doc)
}

// Validate marks a validation category for a reservation. Categories are
// free-form labels owned by the front end.
func (s *Service) Validate(ctx context.Context, venue, id, category string) error {
	return s.setValidation(ctx, venue, id, category, true)
}

// Unvalidate clears a validation category for a reservation.
func (s *Service) Unvalidate(ctx context.Context, venue, id, category string) error {
	return s.setValidation(ctx, venue, id, category, false)
}

func (s *Service) setValidation(ctx context.Context, venue, id, category string, value bool) error {
	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return err
	}

	if value {
		doc.Validations.Set(id, category)
	} else {
		doc.Validations.Unset(id, category)
	}
	return s.store.Save(ctx, venue, doc)
}

// Reset clears the venue's document entirely.
func (s *Service) Reset(ctx context.Context, venue string) error {
	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Save(ctx, venue, models.NewScheduleDocument())
}

// ArchiveAndReset snapshots the venue's document, then clears it. Used by
// the nightly job.
func (s *Service) ArchiveAndReset(ctx context.Context, venue string) error {
	lock := s.venueLock(venue)
	lock.Lock()
	defer lock.Unlock()

	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return err
	}
	if err := s.store.Archive(ctx, venue); err != nil {
		return err
	}
	if err := s.store.Save(ctx, venue, models.NewScheduleDocument()); err != nil {
		return err
	}

	s.fireNotification(venue, notify.KindArchived, len(doc.Reservations))
	return nil
}

// Export pushes the venue's document to the configured catering sheet.
func (s *Service) Export(ctx context.Context, venue string) error {
	if s.exporter == nil {
		return ErrExportNotConfigured
	}

	doc, err := s.store.Load(ctx, venue)
	if err != nil {
		return err
	}
	return s.exporter.ExportSchedule(ctx, venue, doc)
}

// Venues lists every venue with a stored document.
func (s *Service) Venues(ctx context.Context) ([]string, error) {
	return s.store.Venues(ctx)
}

// fireNotification posts a webhook event without blocking the request on
// the webhook's availability.
func (s *Service) fireNotification(venue, kind string, count int) {
	event := notify.Event{
		Venue:        venue,
		Kind:         kind,
		Reservations: count,
		At:           time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.logger.Warn("webhook notification failed",
				zap.String("venue", venue),
				zap.String("kind", kind),
				zap.Error(err))
		}
	}()
}
