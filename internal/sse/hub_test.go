package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achoumais/achoumais/internal/models"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	client := hub.Register("admin-1")
	require.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(&models.TrackedEvent{EventID: "e1", Name: "manual_click"})

	data := <-client.Events
	var got models.TrackedEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "e1", got.EventID)
	assert.Equal(t, "manual_click", got.Name)
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()

	client := hub.Register("admin-1")
	hub.Unregister("admin-1")

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.Events
	assert.False(t, open)
}

func TestHubBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	hub.Register("slow-client")

	// 64 buffered slots; extra broadcasts must not block
	for i := 0; i < 80; i++ {
		hub.Broadcast(&models.TrackedEvent{EventID: "e", Name: "page_view"})
	}

	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := NewHub()
	a := hub.Register("admin-a")
	b := hub.Register("admin-b")

	hub.Broadcast(&models.TrackedEvent{EventID: "e1", Name: "product_view"})

	assert.NotEmpty(t, <-a.Events)
	assert.NotEmpty(t, <-b.Events)
}
