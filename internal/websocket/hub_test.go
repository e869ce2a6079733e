package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestClient(t *testing.T, hub *Hub, clientID string, bikeIDs []string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.GetUpgrader().Upgrade(w, r, nil)
		require.NoError(t, err)
		require.NoError(t, hub.RegisterClient(clientID, conn, bikeIDs))
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectedClients() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ConnectedClients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubDeliversToSubscribedRoom(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Start())
	defer hub.Stop()

	conn := dialTestClient(t, hub, "c1", []string{"B1"})
	waitForClients(t, hub, 1)

	hub.PublishStatus("B1", map[string]interface{}{"battery": 80})

	event := readEvent(t, conn)
	assert.Equal(t, EventTypeStatus, event.Type)
	assert.Equal(t, "B1", event.BikeID)
}

func TestHubFiltersOtherRooms(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Start())
	defer hub.Stop()

	conn := dialTestClient(t, hub, "c1", []string{"B1"})
	waitForClients(t, hub, 1)

	// An event for another bike must not reach this client.
	hub.PublishAlert("B2", map[string]interface{}{"type": "alcoholAttempt"})
	hub.PublishStatus("B1", nil)

	event := readEvent(t, conn)
	assert.Equal(t, "B1", event.BikeID)
	assert.Equal(t, EventTypeStatus, event.Type)
}

func TestHubUnfilteredClientReceivesAll(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Start())
	defer hub.Stop()

	conn := dialTestClient(t, hub, "c1", nil)
	waitForClients(t, hub, 1)

	hub.PublishStatus("B1", nil)
	hub.PublishAlert("B2", nil)

	first := readEvent(t, conn)
	second := readEvent(t, conn)
	assert.Equal(t, "B1", first.BikeID)
	assert.Equal(t, "B2", second.BikeID)
}

func TestHubPreservesSameBikeEventOrder(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Start())
	defer hub.Stop()

	conn := dialTestClient(t, hub, "c1", []string{"B1"})
	waitForClients(t, hub, 1)

	hub.PublishStatus("B1", nil)
	hub.PublishAlert("B1", nil)
	hub.PublishAlert("B1", nil)

	assert.Equal(t, EventTypeStatus, readEvent(t, conn).Type)
	assert.Equal(t, EventTypeAlert, readEvent(t, conn).Type)
	assert.Equal(t, EventTypeAlert, readEvent(t, conn).Type)
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Start())
	defer hub.Stop()

	dialTestClient(t, hub, "c1", nil)
	waitForClients(t, hub, 1)

	require.NoError(t, hub.UnregisterClient("c1"))

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectedClients() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was not unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
