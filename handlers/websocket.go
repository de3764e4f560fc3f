package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	clientQueueSize = 16 // Events waiting to be written, a client lagging further behind is dropped
	writeWait       = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocket streams attendance events to the client until it disconnects
func WebSocket(c *gin.Context) {
	if hub == nil {
		c.JSON(http.StatusServiceUnavailable, Response{"live feed is disabled"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	id := uuid.New().String()
	queue := make(chan []byte, clientQueueSize)
	stop := make(chan struct{})
	stopOnce := sync.Once{}
	// Close may run concurrently with a write, it unblocks a stalled writer
	disconnect := func() {
		stopOnce.Do(func() {
			close(stop)
			_ = conn.Close()
		})
	}
	defer disconnect()

	hub.AddClient(id, func(data []byte) bool {
		select {
		case <-stop:
			return false
		case queue <- data:
			return true
		default:
			log.Printf("Live feed client %s is too slow, dropping it", id)
			disconnect()
			return false
		}
	})
	defer hub.RemoveClient(id)
	log.Printf("Live feed client %s connected (%d total)", id, hub.Clients())

	// Writer, the only goroutine writing messages to conn
	go func() {
		defer disconnect()
		for {
			select {
			case <-stop:
				return
			case data := <-queue:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					log.Println("write err:", err)
					disconnect()
					return
				}
			}
		}
	}()

	// Main read cycle, only pings are expected
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("read err:", err)
			break
		}
		if string(message) == "ping" {
			select {
			case queue <- []byte("pong"):
			default:
			}
		}
	}
}
