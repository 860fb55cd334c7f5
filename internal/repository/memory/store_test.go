package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

func TestLoadUnknownVenueIsEmptyDocument(t *testing.T) {
	doc, err := NewStore().Load(context.Background(), "venue-1")
	require.NoError(t, err)
	assert.Empty(t, doc.Reservations)
	assert.NotNil(t, doc.Validations)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	doc := models.NewScheduleDocument()
	doc.Reservations = append(doc.Reservations, models.Reservation{ID: "res_1", ChildName: "Jean Dupont"})
	doc.Validations.Set("res_1", "pizzas")

	require.NoError(t, store.Save(ctx, "venue-1", doc))

	loaded, err := store.Load(ctx, "venue-1")
	require.NoError(t, err)
	require.Len(t, loaded.Reservations, 1)
	assert.Equal(t, "Jean Dupont", loaded.Reservations[0].ChildName)
	assert.True(t, loaded.Validations["res_1"]["pizzas"])

	// Mutating the loaded copy must not leak back into the store.
	loaded.Reservations[0].ChildName = "changed"
	loaded.Validations.Set("res_1", "drinks")

	again, err := store.Load(ctx, "venue-1")
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", again.Reservations[0].ChildName)
	assert.False(t, again.Validations["res_1"]["drinks"])
}

func TestArchiveSkipsEmptyDocuments(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Archive(ctx, "venue-1"))
	assert.Zero(t, store.ArchivedCount("venue-1"))

	doc := models.NewScheduleDocument()
	doc.Reservations = append(doc.Reservations, models.Reservation{ID: "res_1"})
	require.NoError(t, store.Save(ctx, "venue-1", doc))
	require.NoError(t, store.Archive(ctx, "venue-1"))
	assert.Equal(t, 1, store.ArchivedCount("venue-1"))
}

func TestVenuesAreSorted(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, venue := range []string{"trampoline-lyon", "trampoline-annecy", "trampoline-grenoble"} {
		require.NoError(t, store.Save(ctx, venue, models.NewScheduleDocument()))
	}

	venues, err := store.Venues(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"trampoline-annecy", "trampoline-grenoble", "trampoline-lyon"}, venues)
}
