package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(zerolog.Nop(), metrics.New(prometheus.NewRegistry()), nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubPushesToRecipientOnly(t *testing.T) {
	hub, srv := newTestHub(t)
	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitFor(t, func() bool { return hub.Connections("alice") == 1 && hub.Connections("bob") == 1 })
	assert.Equal(t, float64(2), testutil.ToFloat64(hub.metrics.LiveConnections))

	err := hub.Push(context.Background(), &domain.Notification{
		ID: "evt-1:alice", UserID: "alice", Type: domain.EventTypeLoveRequestCreated,
		Message: "bob asked you for love", ReferenceType: "love_request", ReferenceID: "lr-1",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, alice.ReadJSON(&msg))
	assert.Equal(t, "evt-1:alice", msg.ID)
	assert.Equal(t, "lr-1", msg.ReferenceID)

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err, "bob should not receive alice's notification")
}

func TestHubFansOutToEveryConnection(t *testing.T) {
	hub, srv := newTestHub(t)
	first := dial(t, srv, "carol")
	second := dial(t, srv, "carol")
	waitFor(t, func() bool { return hub.Connections("carol") == 2 })

	require.NoError(t, hub.Push(context.Background(), &domain.Notification{ID: "n1", UserID: "carol", Message: "hi"}))

	for _, conn := range []*websocket.Conn{first, second} {
		var msg Message
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "hi", msg.Message)
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "dave")
	waitFor(t, func() bool { return hub.Connections("dave") == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.Connections("dave") == 0 })
	assert.Equal(t, float64(0), testutil.ToFloat64(hub.metrics.LiveConnections))
}

func TestHubPushWithoutConnections(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil, nil)
	assert.NoError(t, hub.Push(context.Background(), &domain.Notification{ID: "n1", UserID: "nobody"}))
}

func TestHubPushCanceledContext(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, hub.Push(ctx, &domain.Notification{ID: "n1", UserID: "alice"}), context.Canceled)
}
