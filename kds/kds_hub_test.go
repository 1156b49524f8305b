package kds

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-tables/utils"
)

// serveHub registers every upgraded connection with hub, sending snapshot first.
func serveHub(t *testing.T, hub *Hub, snapshot func() Message) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.RegisterClient(conn, "staff", snapshot)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.UnregisterClient(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubSendsSnapshotBeforeBroadcasts(t *testing.T) {
	utils.InitLogger("error")
	hub := NewHub()
	url := serveHub(t, hub, func() Message {
		return Message{Event: EventDashboardUpdate, Data: "snapshot"}
	})

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(Message{Event: EventTableUpdate, Data: "Table 1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var first, second Message
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, EventDashboardUpdate, first.Event)
	assert.Equal(t, EventTableUpdate, second.Event)
	assert.Equal(t, "Table 1", second.Data)
}

func TestHubDropsSlowClientWithoutBlocking(t *testing.T) {
	utils.InitLogger("error")
	hub := NewHub()
	url := serveHub(t, hub, nil)

	// never reads, so its socket and queue fill up
	dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	payload := strings.Repeat("x", 256<<10)
	start := time.Now()
	for i := 0; i < 4*sendBuffer; i++ {
		hub.Broadcast(Message{Event: EventActivity, Data: payload})
	}
	assert.Less(t, time.Since(start), writeWait)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	utils.InitLogger("error")
	hub := NewHub()
	url := serveHub(t, hub, nil)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NotPanics(t, func() { hub.Broadcast(Message{Event: EventActivity}) })
}
