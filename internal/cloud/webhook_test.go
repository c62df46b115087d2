package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhookSinkSend(t *testing.T) {
	var got ObservationPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, zap.NewNop())
	err := sink.Send(context.Background(), ObservationPayload{Badge: "B-1", Zone: "Galley"})
	require.NoError(t, err)
	assert.Equal(t, "B-1", got.Badge)
	assert.Equal(t, "Galley", got.Zone)
}

func TestWebhookSinkIgnoresResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the sink is opaque: a 500 is still a completed exchange
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, zap.NewNop())
	assert.NoError(t, sink.Send(context.Background(), ObservationPayload{}))
}

func TestWebhookSinkTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	sink := NewWebhookSink(srv.URL, zap.NewNop())
	assert.Error(t, sink.Send(context.Background(), ObservationPayload{}))
}

func TestWebhookSinkRequiresURL(t *testing.T) {
	sink := NewWebhookSink("", zap.NewNop())
	assert.ErrorIs(t, sink.Send(context.Background(), ObservationPayload{}), ErrNoWebhookURL)
}
