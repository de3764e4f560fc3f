package events

import (
	"encoding/json"
	"log"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

const TypeAttendance = "attendance"

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

// Sink receives every published event, e.g. MQTT
type Sink interface {
	Send(data []byte) error
}

type Event struct {
	Type  string `json:"type"`
	Stamp int64  `json:"stamp"`
	Data  any    `json:"data"`
}

// Hub fans out events to the connected websocket clients and the sinks
type Hub struct {
	clients cmap.ConcurrentMap[string, SendSocketFunc]
	sinks   []Sink
}

func NewHub(sinks ...Sink) *Hub {
	return &Hub{
		clients: cmap.New[SendSocketFunc](),
		sinks:   sinks,
	}
}

func (h *Hub) AddClient(id string, send SendSocketFunc) {
	h.clients.Set(id, send)
}

func (h *Hub) RemoveClient(id string) {
	h.clients.Remove(id)
}

func (h *Hub) Clients() int {
	return h.clients.Count()
}

// Publish sends the event to everyone. Clients that fail to receive it are dropped.
// Send funcs are called without holding the client map locks and must not block
func (h *Hub) Publish(eventType string, data any) {
	payload, err := json.Marshal(Event{
		Type:  eventType,
		Stamp: time.Now().UnixMilli(),
		Data:  data,
	})
	if err != nil {
		log.Printf("Cannot marshal %s event: %v", eventType, err)
		return
	}
	for id, send := range h.clients.Items() {
		if !send(payload) {
			h.clients.Remove(id)
		}
	}
	for _, sink := range h.sinks {
		if err := sink.Send(payload); err != nil {
			log.Printf("Cannot forward %s event: %v", eventType, err)
		}
	}
}
