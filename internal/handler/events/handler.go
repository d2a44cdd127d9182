package events

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/calebmoore/people-api/internal/events"
)

// Handler streams person store mutations to WebSocket clients.
type Handler struct {
	broker   *events.Broker
	upgrader websocket.Upgrader
}

// New creates the change-feed handler.
func New(broker *events.Broker) *Handler {
	return &Handler{
		broker: broker,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the feed endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.handleFeed)
}

// handleFeed upgrades the connection and forwards broker events as JSON
// until the client goes away.
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	id, ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(id)
	log.Printf("[events] subscriber %s connected", id)

	// The feed is one-way; the read pump only surfaces client closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			log.Printf("[events] subscriber %s disconnected", id)
			return
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("[events] subscriber %s write failed: %v", id, err)
				return
			}
		}
	}
}
