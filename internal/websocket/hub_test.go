package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) *Hub {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, userID string, n int) {
	require.Eventually(t, func() bool {
		return hub.ConnectedClients(userID) == n
	}, time.Second, 5*time.Millisecond)
}

func TestHub_PublishEventReachesUserClients(t *testing.T) {
	hub := startHub(t)

	first := NewClient(hub, nil, "user-a")
	second := NewClient(hub, nil, "user-a")
	other := NewClient(hub, nil, "user-b")
	hub.Register <- first
	hub.Register <- second
	hub.Register <- other
	waitForClients(t, hub, "user-a", 2)

	hub.PublishEvent("user-a", NewEvent(EventAvatarUpdated, map[string]string{"avatar": "https://example.com/a.png"}))

	for _, c := range []*Client{first, second} {
		select {
		case payload := <-c.send:
			var event Event
			require.NoError(t, json.Unmarshal(payload, &event))
			require.Equal(t, EventAvatarUpdated, event.Type)
			require.False(t, event.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}

	select {
	case <-other.send:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, nil, "user-c")
	hub.Register <- client
	waitForClients(t, hub, "user-c", 1)

	hub.Unregister <- client
	waitForClients(t, hub, "user-c", 0)

	_, ok := <-client.send
	require.False(t, ok, "send channel should be closed")

	// Publishing to a user without connections is a no-op.
	hub.PublishEvent("user-c", NewEvent(EventSessionEnded, nil))
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, nil, "user-d")
	hub.Register <- client
	waitForClients(t, hub, "user-d", 1)

	for i := 0; i < cap(client.send)+10; i++ {
		hub.PublishEvent("user-d", NewEvent(EventAccountUpdated, nil))
	}
	require.Len(t, client.send, cap(client.send))
}

func TestHub_RunStopsOnContextCancel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := NewClient(hub, nil, "user-e")
	hub.Register <- client
	waitForClients(t, hub, "user-e", 1)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	_, ok := <-client.send
	require.False(t, ok)
	require.Zero(t, hub.ConnectedClients("user-e"))

	select {
	case <-hub.Done():
	default:
		t.Fatal("Done should be closed after Run returns")
	}
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	upgrader := NewUpgrader([]string{"http://localhost:5173"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "no origin", origin: "", want: true},
		{name: "allowed origin", origin: "http://localhost:5173", want: true},
		{name: "same host", origin: "https://api.example.com", want: true},
		{name: "other site", origin: "https://evil.example", want: false},
		{name: "allowed host other port", origin: "http://localhost:6000", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://api.example.com/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			require.Equal(t, tt.want, upgrader.CheckOrigin(req))
		})
	}

	wildcard := NewUpgrader([]string{"*"})
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	require.True(t, wildcard.CheckOrigin(req))
}
