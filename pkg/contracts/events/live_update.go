package events

import "time"

// Odd é uma cotação do mercado principal de resultado.
type Odd struct {
	Name  string `json:"name"` // "1" | "X" | "2"
	Value string `json:"value"`
}

// Match é o evento de partida normalizado no formato de wire, compartilhado
// pelos broadcasts WebSocket, pela ponte Redis e pelo tópico Kafka.
type Match struct {
	ID         string `json:"id"`
	SportID    int    `json:"sport_id"`
	League     string `json:"league"`
	Home       string `json:"home"`
	Away       string `json:"away"`
	Name       string `json:"name"`
	Score      string `json:"ss"`
	Timer      string `json:"timer"`
	TimeStatus string `json:"time_status"`
	IsVirtual  bool   `json:"is_virtual"`
	Odds       []Odd  `json:"odds"`
}

// LiveUpdate é o payload enviado aos clientes inscritos em um esporte
// específico (canal sport:<id>).
type LiveUpdate struct {
	SportID   int       `json:"sportId"`
	Matches   []Match   `json:"matches"`
	Timestamp time.Time `json:"timestamp"`
}

// LiveUpdateAll é o payload enviado ao canal global, sem filtro de esporte.
type LiveUpdateAll struct {
	Matches   []Match   `json:"matches"`
	Timestamp time.Time `json:"timestamp"`
}
