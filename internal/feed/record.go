package feed

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/chanderhat/bet-backend/pkg/contracts/events"
)

// Tipos de registro do stream hierárquico do fornecedor.
const (
	recCategory = "CT"
	recEvent    = "EV"
	recMarket   = "MA"
	recOutcome  = "PA"
)

// flexString aceita string ou número no JSON do fornecedor, que não é
// consistente entre endpoints.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

func (s flexString) String() string { return string(s) }

// Record é um item do stream do fornecedor. Os campos seguem a nomenclatura
// do feed; o discriminador Type define quais são relevantes.
type Record struct {
	Type flexString `json:"type"`
	ID   flexString `json:"ID"`
	NA   flexString `json:"NA"` // nome (liga, evento ou mercado)
	SS   flexString `json:"SS"` // placar
	TM   flexString `json:"TM"` // cronômetro
	TT   flexString `json:"TT"` // time status: 0 agendado, 1 ao vivo, 3 encerrado
	VI   flexString `json:"VI"` // flag de evento virtual
	OR   flexString `json:"OR"` // posição do resultado no mercado
	OD   flexString `json:"OD"` // valor da odd
}

// MatchEvent é o evento normalizado emitido pelo parser. O formato de wire
// mora em pkg/contracts/events; o parser produz direto nesse formato.
type MatchEvent = events.Match

// Odd é uma cotação do mercado principal de resultado.
type Odd = events.Odd

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
