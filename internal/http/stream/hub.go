package stream

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/store"
)

// Message types pushed to subscribers.
const (
	MessageTypeSchedule = "schedule"
	MessageTypeError    = "error"
)

const defaultMaxClients = 500

// Message is the envelope written to every websocket client.
type Message struct {
	Type      string    `json:"type"`
	Date      string    `json:"date,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ComposeFunc turns a stored schedule day into the payload clients render.
type ComposeFunc func(day store.ScheduleDay) any

// Hub fans committed schedule refreshes out to connected clients.
// New clients receive the latest payload on connect.
type Hub struct {
	compose    ComposeFunc
	logger     *slog.Logger
	maxClients int

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.RWMutex
	stopped bool
	latest  []byte
}

// NewHub builds a hub. A nil compose sends the raw day.
func NewHub(compose ComposeFunc, logger *slog.Logger, maxClients int) *Hub {
	if compose == nil {
		compose = func(day store.ScheduleDay) any { return day }
	}
	if maxClients <= 0 {
		maxClients = defaultMaxClients
	}
	return &Hub{
		compose:    compose,
		logger:     logger,
		maxClients: maxClients,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// Stop shuts the hub down and closes every client. It waits for Run to exit.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ScheduleRefreshed broadcasts the composed day to every client.
func (h *Hub) ScheduleRefreshed(day store.ScheduleDay) {
	data, err := json.Marshal(Message{
		Type:      MessageTypeSchedule,
		Date:      day.Date,
		Data:      h.compose(day),
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logging.Error(h.logger, "stream marshal failed", err, slog.String(logging.FieldDate, day.Date))
		return
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.latest = data
	var slow []*Client
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	for _, client := range slow {
		logging.Warn(h.logger, "stream dropping slow client")
		h.removeClient(client)
	}
	logging.Info(h.logger, "stream broadcast",
		slog.String(logging.FieldDate, day.Date),
		slog.Int(logging.FieldCount, count-len(slow)),
	)
}

func (h *Hub) subscribe(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unsubscribe(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		client.close()
		return
	}
	if len(h.clients) >= h.maxClients {
		data, _ := json.Marshal(Message{
			Type:      MessageTypeError,
			Error:     "server at capacity",
			Timestamp: time.Now().UTC(),
		})
		client.send <- data
		client.close()
		logging.Warn(h.logger, "stream client rejected", slog.Int(logging.FieldCount, len(h.clients)))
		return
	}

	h.clients[client] = true
	if h.latest != nil {
		client.send <- h.latest
	}
	logging.Info(h.logger, "stream client connected", slog.Int(logging.FieldCount, len(h.clients)))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()
	logging.Info(h.logger, "stream client disconnected", slog.Int(logging.FieldCount, len(h.clients)))
}
