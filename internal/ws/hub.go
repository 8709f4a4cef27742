package ws

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/feed"
	"github.com/chanderhat/bet-backend/pkg/contracts/events"
)

// client é o mínimo que o hub precisa de uma conexão.
type client interface {
	WriteJSON(v any) error
}

// wsConn serializa as escritas na conexão: o gorilla permite um único
// escritor por vez, e aqui o loop de leitura (pong, ack de subscribe) e os
// broadcasts do poller escrevem na mesma conexão.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub gerencia conexões WebSocket e as salas de assinatura por esporte.
// rooms: mapeia sportID para o conjunto de conexões inscritas.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[client]struct{}
	rooms map[int]map[client]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS).
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		conns:    make(map[client]struct{}),
		rooms:    make(map[int]map[client]struct{}),
	}
}

// ConnectedClients retorna o total de clientes conectados, pro health check.
func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(c client) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	total := len(h.conns)
	h.mu.Unlock()
	h.log.Info("client connected", zap.Int("total", total))
}

func (h *Hub) unregister(c client) {
	h.mu.Lock()
	delete(h.conns, c)
	for _, room := range h.rooms {
		delete(room, c)
	}
	total := len(h.conns)
	h.mu.Unlock()
	h.log.Info("client disconnected", zap.Int("total", total))
}

func (h *Hub) subscribe(c client, sportID int) {
	h.mu.Lock()
	if _, ok := h.rooms[sportID]; !ok {
		h.rooms[sportID] = make(map[client]struct{})
	}
	h.rooms[sportID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unsubscribe(c client, sportID int) {
	h.mu.Lock()
	if room, ok := h.rooms[sportID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, sportID)
		}
	}
	h.mu.Unlock()
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket: saudação,
// subscribe/unsubscribe por esporte e ping.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	cl := &wsConn{conn: conn}
	h.register(cl)
	defer h.unregister(cl)

	_ = cl.WriteJSON(Message{Event: EventConnected, Data: map[string]any{
		"message":   "Connected to live feed",
		"timestamp": time.Now().UTC(),
	}})

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe:sport":
			h.subscribe(cl, msg.SportID)
			_ = cl.WriteJSON(Message{Event: EventSubscribed, Data: map[string]any{
				"room":    roomName(msg.SportID),
				"sportId": msg.SportID,
			}})
		case "unsubscribe:sport":
			h.unsubscribe(cl, msg.SportID)
		case "ping":
			_ = cl.WriteJSON(map[string]string{"type": "pong"})
		}
	}
}

// PushLiveUpdate envia um update pros inscritos na sala do esporte, ou pra
// todos os conectados quando sportID é nil. Sem fila e sem garantia de
// entrega: cliente que falhar na escrita simplesmente perde a mensagem.
func (h *Hub) PushLiveUpdate(sportID *int, matches []feed.MatchEvent) {
	now := time.Now().UTC()

	var msg Message
	var targets []client

	h.mu.RLock()
	if sportID != nil {
		msg = Message{Event: EventLiveUpdate, Data: events.LiveUpdate{
			SportID:   *sportID,
			Matches:   matches,
			Timestamp: now,
		}}
		for c := range h.rooms[*sportID] {
			targets = append(targets, c)
		}
	} else {
		msg = Message{Event: EventLiveUpdateAll, Data: events.LiveUpdateAll{
			Matches:   matches,
			Timestamp: now,
		}}
		for c := range h.conns {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		_ = c.WriteJSON(msg)
	}
}

func roomName(sportID int) string {
	return "sport:" + strconv.Itoa(sportID)
}
