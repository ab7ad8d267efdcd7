package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive so cloud load balancers don't cut idle sockets.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		tripID, _ := s.Get("trip_id")
		log.Printf("✅ Client connected to trip: %v", tripID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		tripID, _ := s.Get("trip_id")
		log.Printf("🔌 Client disconnected from trip: %v", tripID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and subscribes the socket to one trip's
// update stream.
func (h *WSHandler) HandleWS(c *gin.Context) {
	tripID := c.Param("id")

	// The trip id rides along as a session key so the broadcast filter
	// can match it; HandleRequest blocks until the socket closes.
	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"trip_id": tripID,
	})
	if err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastUpdate signals every client watching the trip that something
// changed; clients re-fetch whatever view they show.
func (h *WSHandler) BroadcastUpdate(tripID string, updateType string, userID string) {
	msg := []byte(`{"type": "` + updateType + `", "user": "` + userID + `"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("trip_id")
		return exists && id == tripID
	})

	if err != nil {
		log.Printf("⚠️ Error broadcasting to trip %s: %v", tripID, err)
	}
}
