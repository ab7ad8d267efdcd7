package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func dialTrip(t *testing.T, serverURL, tripID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/trips/" + tripID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	return conn
}

func TestBroadcastReachesOnlySubscribedTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewWSHandler()
	router := gin.New()
	router.GET("/ws/trips/:id", h.HandleWS)

	srv := httptest.NewServer(router)
	defer srv.Close()

	connA := dialTrip(t, srv.URL, "trip-a")
	defer connA.Close()
	connB := dialTrip(t, srv.URL, "trip-b")
	defer connB.Close()

	// Sessions register asynchronously inside the handler.
	deadline := time.Now().Add(2 * time.Second)
	for h.M.Len() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sessions never registered, have %d", h.M.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.BroadcastUpdate("trip-a", "expense_created", "u1")

	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := connA.ReadMessage()
	if err != nil {
		t.Fatalf("trip-a client did not receive broadcast: %v", err)
	}
	if !strings.Contains(string(msg), "expense_created") || !strings.Contains(string(msg), "u1") {
		t.Fatalf("unexpected broadcast payload: %s", msg)
	}

	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, msg, err := connB.ReadMessage(); err == nil {
		t.Fatalf("trip-b client received a trip-a broadcast: %s", msg)
	}
}
