package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/valhq/flowscope/internal/core/discovery"
	"github.com/valhq/flowscope/internal/core/domain"
)

// Push-update message variants. Only topologyUpdate is emitted by the
// periodic loop today; the other shapes are part of the client contract.
type topologyUpdateMessage struct {
	Type                string `json:"type"`
	TotalContainers     int    `json:"totalContainers"`
	RunningContainers   int    `json:"runningContainers"`
	HealthyContainers   int    `json:"healthyContainers"`
	UnhealthyContainers int    `json:"unhealthyContainers"`
	Timestamp           string `json:"timestamp"`
}

type containerUpdateMessage struct {
	Type       string                   `json:"type"`
	Containers []domain.ContainerRecord `json:"containers"`
	Timestamp  string                   `json:"timestamp"`
}

type heartbeatMessage struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

func newTopologyUpdate(topology *domain.TopologySnapshot, at time.Time) topologyUpdateMessage {
	return topologyUpdateMessage{
		Type:                "topologyUpdate",
		TotalContainers:     topology.TotalContainers,
		RunningContainers:   topology.RunningContainers,
		HealthyContainers:   topology.HealthyContainers,
		UnhealthyContainers: topology.UnhealthyContainers,
		Timestamp:           at.UTC().Format(time.RFC3339),
	}
}

// jsonWriter is the write half of a connection, as seen by the push loop.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// WsHandler pushes periodic topology updates to each connected client.
type WsHandler struct {
	service  *discovery.Service
	interval time.Duration
	log      *slog.Logger
}

func NewWsHandler(service *discovery.Service, interval time.Duration, log *slog.Logger) *WsHandler {
	return &WsHandler{service: service, interval: interval, log: log}
}

// Serve runs one client connection: a periodic send loop and a receive
// loop, torn down together. A failed send ends the connection immediately,
// with no retry and no buffering of missed ticks.
func (h *WsHandler) Serve(conn *websocket.Conn) {
	connID := uuid.NewString()[:8]
	h.log.Info("websocket client connected", "conn", connID)
	wsClients.Inc()
	defer wsClients.Dec()
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType == websocket.TextMessage {
				h.log.Debug("websocket message received", "conn", connID, "payload", string(msg))
			}
		}
	}()

	h.pushLoop(done, conn, connID)
}

// pushLoop emits one topology update per tick until the client goes away or
// a send fails. A failed topology refresh skips the tick, never the loop.
func (h *WsHandler) pushLoop(done <-chan struct{}, conn jsonWriter, connID string) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.log.Info("websocket client disconnected", "conn", connID)
			return
		case <-ticker.C:
			topology, err := h.service.Topology(context.Background())
			if err != nil {
				h.log.Error("topology refresh failed for push update", "conn", connID, "error", err)
				continue
			}
			if err := conn.WriteJSON(newTopologyUpdate(topology, time.Now())); err != nil {
				h.log.Info("websocket send failed, closing", "conn", connID, "error", err)
				return
			}
			wsBroadcasts.Inc()
		}
	}
}
