package ws

import (
	"context"
	"sync"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks open websocket connections per user.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		log:        logger.OrNop(log),
	}
}

// Run processes registrations until ctx is done, then closes every client.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.drainPending()
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register adds client to the hub. Once the hub has stopped the client's
// send channel is closed right away so its write pump exits.
func (h *Hub) Register(client *Client) {
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister never blocks after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// PushToUser queues payload on every connection of userID and returns how
// many accepted it. Connections with a full send buffer are dropped.
func (h *Hub) PushToUser(userID uuid.UUID, payload []byte) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	delivered := 0
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
			delivered++
		default:
			h.log.Warn("dropping slow websocket client", zap.String("user_id", userID.String()))
			go h.Unregister(c)
		}
	}
	return delivered
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	h.mutex.Unlock()

	metrics.WebsocketClients.Inc()
	h.log.Debug("websocket client connected", zap.String("user_id", client.userID.String()))
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if ok {
		if _, ok = set[client]; ok {
			delete(set, client)
			close(client.send)
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
	h.mutex.Unlock()

	if ok {
		metrics.WebsocketClients.Dec()
		h.log.Debug("websocket client disconnected", zap.String("user_id", client.userID.String()))
	}
}

func (h *Hub) drainPending() {
	for {
		select {
		case client := <-h.register:
			close(client.send)
		default:
			return
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
			metrics.WebsocketClients.Dec()
		}
		delete(h.clients, userID)
	}
}
