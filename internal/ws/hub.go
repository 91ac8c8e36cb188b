package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/goroutine"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
)

// EventDataChanged тип сообщения об изменении данных.
const EventDataChanged = "data.changed"

// Envelope сообщение, которое получает клиент.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub рассылает события об изменениях всем подключённым клиентам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run главный цикл хаба, завершается по ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента. После остановки хаба возвращает false.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish реализует service.Notifier и не блокирует вызывающего:
// при переполненной очереди событие отбрасывается.
func (h *Hub) Publish(event models.ChangeEvent) {
	raw, err := json.Marshal(Envelope{Type: EventDataChanged, Data: event})
	if err != nil {
		logger.Log.WithError(err).Warn("ws: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- raw:
	default:
		logger.Log.WithFields(logrus.Fields{
			"entity": event.Entity,
			"action": event.Action,
		}).Warn("ws: очередь рассылки переполнена, событие пропущено")
	}
}

// Clients число подключённых клиентов.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	logger.Log.WithField("client", client.id).Debug("ws: клиент подключён")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		logger.Log.WithField("client", client.id).Debug("ws: клиент отключён")
	}
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент отключается
			c := client
			goroutine.SafeGo(fmt.Sprintf("ws.close.%s", c.id), c.Close)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
