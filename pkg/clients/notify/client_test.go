package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partyops/jumpkitchen/internal/config"
)

func TestNotifyPostsEvent(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: server.URL, Timeout: 5 * time.Second})
	err := client.Notify(context.Background(), Event{
		Venue:        "trampoline-annecy",
		Kind:         KindIngested,
		Reservations: 3,
		At:           time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, "trampoline-annecy", received.Venue)
	assert.Equal(t, KindIngested, received.Kind)
	assert.Equal(t, 3, received.Reservations)
}

func TestNotifyReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no thanks", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(config.NotifyConfig{WebhookURL: server.URL, Timeout: 5 * time.Second})
	err := client.Notify(context.Background(), Event{Kind: KindArchived})
	assert.Error(t, err)
}
