package ws

import "github.com/chanderhat/bet-backend/internal/feed"

// ClientMsg representa uma mensagem recebida do cliente WebSocket.
// Type: subscribe:sport | unsubscribe:sport | ping
type ClientMsg struct {
	Type    string `json:"type"`
	SportID int    `json:"sportId"` // requerido em subscribe/unsubscribe
}

// Message é o envelope de saída: nome do evento + payload.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Nomes de evento do canal de broadcast.
const (
	EventLiveUpdate    = "live:update"
	EventLiveUpdateAll = "live:update:all"
	EventConnected     = "connected"
	EventSubscribed    = "subscribed"
)

// bridgeMsg espelha um broadcast entre instâncias via Redis Pub/Sub.
// Origin identifica a instância emissora, pra descartar o próprio eco.
type bridgeMsg struct {
	Origin  string            `json:"origin"`
	SportID *int              `json:"sportId,omitempty"`
	Matches []feed.MatchEvent `json:"matches"`
}
