package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyops/jumpkitchen/internal/domain/models"
	"github.com/partyops/jumpkitchen/internal/extraction"
	"github.com/partyops/jumpkitchen/internal/pdf"
	"github.com/partyops/jumpkitchen/internal/repository/memory"
	"github.com/partyops/jumpkitchen/pkg/clients/notify"
)

const sampleSchedule = "14:00-16:00 Jump Anniv salle 2\n" +
	"12.00 Formule Morning\n" +
	"Jean Dupont (M) 7 ans\n" +
	"17:30-19:30 Jump Anniv salle 1\n" +
	"15.00 Formule Anniversaire VIP\n" +
	"Léa Martin (F) 9 ans\n"

// stubTextSource replaces the PDF reader so tests can feed raw text.
type stubTextSource struct {
	text string
	err  error
}

func (s stubTextSource) ExtractText(context.Context, io.ReaderAt, int64) (string, error) {
	return s.text, s.err
}

type recordingNotifier struct {
	events chan notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notify.Event) error {
	n.events <- event
	return nil
}

type recordingExporter struct {
	venue string
	doc   models.ScheduleDocument
}

func (e *recordingExporter) ExportSchedule(_ context.Context, venue string, doc models.ScheduleDocument) error {
	e.venue = venue
	e.doc = doc
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("res_%03d", n)
	}
}

func newTestService(t *testing.T, source pdf.Extractor, exporter Exporter, notifier notify.Notifier) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	extractor := extraction.New(extraction.Options{NewID: sequentialIDs()})
	return NewService(store, extractor, source, exporter, notifier, 10, nil), store
}

func ingestSample(t *testing.T, svc *Service, venue string) int {
	t.Helper()
	payload := strings.NewReader("unused")
	count, err := svc.Ingest(context.Background(), venue, payload, payload.Size())
	require.NoError(t, err)
	return count
}

func TestIngestReplacesDocument(t *testing.T) {
	svc, store := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()

	// A prior day's document with validation marks must be fully replaced.
	stale := models.NewScheduleDocument()
	stale.Reservations = append(stale.Reservations, models.Reservation{ID: "old"})
	stale.Validations.Set("old", "pizzas")
	require.NoError(t, store.Save(ctx, "venue-1", stale))

	count := ingestSample(t, svc, "venue-1")
	assert.Equal(t, 2, count)

	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, doc.Reservations, 2)
	assert.Equal(t, "Jean Dupont", doc.Reservations[0].ChildName)
	assert.Empty(t, doc.Validations)
}

func TestIngestEmptyScheduleIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: "rien d'intéressant ici"}, nil, nil)

	count := ingestSample(t, svc, "venue-1")
	assert.Zero(t, count)

	doc, err := svc.Document(context.Background(), "venue-1")
	require.NoError(t, err)
	assert.NotNil(t, doc.Reservations)
}

func TestIngestSurfacesUnreadableSource(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{err: fmt.Errorf("%w: bad xref", pdf.ErrSourceUnreadable)}, nil, nil)

	payload := strings.NewReader("unused")
	_, err := svc.Ingest(context.Background(), "venue-1", payload, payload.Size())
	assert.True(t, errors.Is(err, pdf.ErrSourceUnreadable))
}

func TestIngestNotifiesWebhook(t *testing.T) {
	notifier := &recordingNotifier{events: make(chan notify.Event, 1)}
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, notifier)

	ingestSample(t, svc, "venue-1")

	select {
	case event := <-notifier.events:
		assert.Equal(t, notify.KindIngested, event.Kind)
		assert.Equal(t, "venue-1", event.Venue)
		assert.Equal(t, 2, event.Reservations)
	case <-time.After(2 * time.Second):
		t.Fatal("no webhook event fired after ingestion")
	}
}

func TestKitchenFiltersSortsAndCaps(t *testing.T) {
	svc, store := newTestService(t, stubTextSource{}, nil, nil)
	ctx := context.Background()

	doc := models.NewScheduleDocument()
	for i := 0; i < 15; i++ {
		doc.Reservations = append(doc.Reservations, models.Reservation{
			ID:       fmt.Sprintf("res_%02d", i),
			MealTime: fmt.Sprintf("%02d:00", 23-i),
			Done:     i == 0, // latest serving already done
		})
	}
	require.NoError(t, store.Save(ctx, "venue-1", doc))

	view, err := svc.Kitchen(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, view.Reservations, 10)
	assert.Equal(t, "09:00", view.Reservations[0].MealTime)
	for i := 1; i < len(view.Reservations); i++ {
		assert.LessOrEqual(t, view.Reservations[i-1].MealTime, view.Reservations[i].MealTime)
	}
	for _, r := range view.Reservations {
		assert.False(t, r.Done)
	}
}

func TestUpdateRecomputesQuantities(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	id := doc.Reservations[0].ID

	newCount := 16
	updated, err := svc.Update(ctx, "venue-1", id, models.ReservationUpdate{ChildCount: &newCount})
	require.NoError(t, err)
	assert.Equal(t, extraction.PizzaBaseline(16), updated.Pizzas)
	assert.Equal(t, 3, updated.SnackCount)
	assert.Equal(t, updated.SnackCount, updated.DrinkCount)

	// The edit is persisted.
	doc, err = svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	assert.Equal(t, 16, doc.Reservations[doc.FindReservation(id)].ChildCount)
}

func TestUpdateUnknownReservation(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ingestSample(t, svc, "venue-1")

	_, err := svc.Update(context.Background(), "venue-1", "res_nope", models.ReservationUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkDoneAndDelete(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	first, second := doc.Reservations[0].ID, doc.Reservations[1].ID

	require.NoError(t, svc.MarkDone(ctx, "venue-1", first))
	view, err := svc.Kitchen(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, view.Reservations, 1)
	assert.Equal(t, second, view.Reservations[0].ID)

	require.NoError(t, svc.Delete(ctx, "venue-1", second))
	doc, err = svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, doc.Reservations, 1)
	assert.Equal(t, first, doc.Reservations[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, "venue-1", "res_nope"), ErrNotFound)
}

func TestValidationRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	id := doc.Reservations[0].ID

	require.NoError(t, svc.Validate(ctx, "venue-1", id, "pizzas"))
	require.NoError(t, svc.Validate(ctx, "venue-1", id, "gateau"))

	doc, err = svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	assert.True(t, doc.Validations[id]["pizzas"])
	assert.True(t, doc.Validations[id]["gateau"])

	require.NoError(t, svc.Unvalidate(ctx, "venue-1", id, "pizzas"))
	doc, err = svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	assert.False(t, doc.Validations[id]["pizzas"])
	assert.True(t, doc.Validations[id]["gateau"])
}

func TestResetClearsEverything(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	require.NoError(t, svc.Reset(ctx, "venue-1"))
	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	assert.Empty(t, doc.Reservations)
	assert.Empty(t, doc.Validations)
}

func TestArchiveAndReset(t *testing.T) {
	svc, store := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	require.NoError(t, svc.ArchiveAndReset(ctx, "venue-1"))
	assert.Equal(t, 1, store.ArchivedCount("venue-1"))

	doc, err := svc.Document(ctx, "venue-1")
	require.NoError(t, err)
	assert.Empty(t, doc.Reservations)
}

func TestExport(t *testing.T) {
	svc, _ := newTestService(t, stubTextSource{text: sampleSchedule}, nil, nil)
	assert.ErrorIs(t, svc.Export(context.Background(), "venue-1"), ErrExportNotConfigured)

	exporter := &recordingExporter{}
	svc, _ = newTestService(t, stubTextSource{text: sampleSchedule}, exporter, nil)
	ctx := context.Background()
	ingestSample(t, svc, "venue-1")

	require.NoError(t, svc.Export(ctx, "venue-1"))
	assert.Equal(t, "venue-1", exporter.venue)
	assert.Len(t, exporter.doc.Reservations, 2)
}
