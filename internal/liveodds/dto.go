package liveodds

import (
	"encoding/json"
	"time"

	"github.com/chanderhat/bet-backend/internal/feed"
)

// FetchResult é o contrato de retorno das buscas de partidas. Falha upstream
// nunca vira erro pro chamador; vira Success=false com a mensagem.
type FetchResult struct {
	Success   bool              `json:"success"`
	Results   []feed.MatchEvent `json:"results"`
	Count     int               `json:"count"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
}

// DetailResult carrega o detalhe cru de um evento único.
type DetailResult struct {
	Success   bool            `json:"success"`
	Results   json.RawMessage `json:"results,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Error     string          `json:"error,omitempty"`
}

func failure(err error) *FetchResult {
	return &FetchResult{Success: false, Results: []feed.MatchEvent{}, Timestamp: time.Now().UTC(), Error: err.Error()}
}
