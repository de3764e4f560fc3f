package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type recordingSink struct {
	got [][]byte
	err error
}

func (s *recordingSink) Send(data []byte) error {
	s.got = append(s.got, data)
	return s.err
}

func TestHub_Publish(t *testing.T) {
	sink := &recordingSink{}
	failing := &recordingSink{err: errors.New("broker down")}
	h := NewHub(sink, failing)

	var received [][]byte
	h.AddClient("ok", func(b []byte) bool {
		received = append(received, b)
		return true
	})
	h.AddClient("gone", func(b []byte) bool {
		return false
	})
	if h.Clients() != 2 {
		t.Fatalf("Clients() = %d, want 2", h.Clients())
	}

	h.Publish(TypeAttendance, map[string]string{"result": "Unknown"})

	if len(received) != 1 {
		t.Fatalf("client received %d events, want 1", len(received))
	}
	var e struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(received[0], &e); err != nil {
		t.Fatal(err)
	}
	if e.Type != TypeAttendance || e.Data["result"] != "Unknown" {
		t.Errorf("event = %+v", e)
	}
	if h.Clients() != 1 {
		t.Errorf("failed client was not dropped, Clients() = %d", h.Clients())
	}
	if len(sink.got) != 1 || len(failing.got) != 1 {
		t.Errorf("sinks received %d and %d events, want 1 each", len(sink.got), len(failing.got))
	}

	h.RemoveClient("ok")
	h.Publish(TypeAttendance, nil)
	if len(received) != 1 {
		t.Error("removed client still receives events")
	}
}

func TestHub_PublishUnmarshalable(t *testing.T) {
	sink := &recordingSink{}
	h := NewHub(sink)
	h.Publish(TypeAttendance, make(chan int))
	if len(sink.got) != 0 {
		t.Error("unmarshalable event must not be forwarded")
	}
}

func TestHub_PublishFromSendFunc(t *testing.T) {
	h := NewHub()
	// The send func changes the client map, as the websocket handler does on disconnect
	h.AddClient("self", func(b []byte) bool {
		h.RemoveClient("self")
		h.AddClient("other", func([]byte) bool { return true })
		return true
	})

	done := make(chan struct{})
	go func() {
		h.Publish(TypeAttendance, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish() blocked on the client map")
	}
	if h.Clients() != 1 {
		t.Errorf("Clients() = %d, want 1", h.Clients())
	}
}
