package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/event"
)

func TestWebhookNotifier_Delivers(t *testing.T) {
	var got webhookBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	err := n.Notify(context.Background(), "field.created", map[string]string{"field_id": "f1"})

	require.NoError(t, err)
	assert.Equal(t, "field.created", got.Kind)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL)
	err := n.Notify(context.Background(), "field.created", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(ctx context.Context, kind string, payload interface{}) error {
	f.calls++
	return assert.AnError
}

func TestSubscribeAll_SwallowsDeliveryErrors(t *testing.T) {
	bus := event.NewMemoryBus()
	n := &failingNotifier{}
	SubscribeAll(bus, n)

	// A failing notifier must not fail the publish.
	err := bus.Publish(context.Background(), event.NewFieldEvent(event.FieldCreated, "f1", "o1", "North Paddy", "clay"))
	assert.NoError(t, err)
	assert.Equal(t, 1, n.calls)
}
