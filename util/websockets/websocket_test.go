package websockets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc, string) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleConnections(w, r, "jim")
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, cancel, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishReachesEverySubscriber(t *testing.T) {
	hub, _, url := startHub(t)

	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: EventCaseStatus, CaseID: 5, Actor: "judy", Data: map[string]string{"status": "approved"}})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"case_status_update","case_id":5,"actor":"judy","data":{"status":"approved"}}`, string(msg))
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, _, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesSubscribers(t *testing.T) {
	hub, cancel, url := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_PublishWithoutRunDoesNotBlock(t *testing.T) {
	hub := NewHub()

	for i := 0; i < broadcastQueue+10; i++ {
		hub.Publish(Event{Type: EventVoteUpdate, CaseID: int64(i)})
	}

	var nilHub *Hub
	nilHub.Publish(Event{Type: EventCaseDeleted, CaseID: 1})
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(Event{Type: EventCaseDeleted, CaseID: 9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"case_deleted","case_id":9}`, string(b))
}
