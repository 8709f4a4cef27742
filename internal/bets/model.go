package bets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de aposta. Liquidação não acontece aqui: apostas ficam PENDING até
// um processo externo de grading, fora do escopo deste serviço.
const StatusPending = "PENDING"

// Tipos de aposta.
const (
	OddsTypeBack = "Back"
	OddsTypeLay  = "Lay"
)

// Tipos de transação do ledger.
const TxnBetPlaced = "BET_PLACED"

// Bet é a aposta persistida. Imutável após a criação, exceto status e
// settledAt.
type Bet struct {
	ID           string          `json:"id"`
	PlayerID     string          `json:"playerId"`
	MatchID      string          `json:"matchId"`
	MatchName    string          `json:"matchName"`
	League       string          `json:"league"`
	Market       string          `json:"market"`
	Selection    string          `json:"selection"`
	OddsType     string          `json:"oddsType"`
	Odds         decimal.Decimal `json:"odds"`
	Stake        decimal.Decimal `json:"stake"`
	PotentialWin decimal.Decimal `json:"potentialWin"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	SettledAt    *time.Time      `json:"settledAt"`
}

// Transaction é uma linha do trilho de auditoria do ledger. Append-only: uma
// linha por mutação de saldo, criada na mesma transação da mutação.
type Transaction struct {
	ID            string          `json:"id"`
	PlayerID      string          `json:"playerId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // negativo = débito
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Ref           string          `json:"ref"`
	Note          string          `json:"note"`
	CreatedAt     time.Time       `json:"createdAt"`
}
