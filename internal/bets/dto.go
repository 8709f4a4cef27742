package bets

import "time"

// PlaceBetRequest é o corpo de POST /bets.
type PlaceBetRequest struct {
	MatchID   string  `json:"matchId"`
	MatchName string  `json:"matchName"`
	League    string  `json:"league"`
	Market    string  `json:"market"`
	Selection string  `json:"selection"`
	OddsType  string  `json:"oddsType"` // "Back" | "Lay"
	Odds      float64 `json:"odds"`
	Stake     float64 `json:"stake"`
}

// BetView é a aposta na resposta da API, com valores numéricos simples.
type BetView struct {
	ID           string     `json:"id"`
	MatchID      string     `json:"matchId"`
	MatchName    string     `json:"matchName"`
	League       string     `json:"league"`
	Market       string     `json:"market"`
	Selection    string     `json:"selection"`
	OddsType     string     `json:"oddsType"`
	Odds         float64    `json:"odds"`
	Stake        float64    `json:"stake"`
	PotentialWin float64    `json:"potentialWin"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	SettledAt    *time.Time `json:"settledAt,omitempty"`
}

// PlaceBetResponse devolve a aposta criada e o novo saldo.
type PlaceBetResponse struct {
	Bet        BetView `json:"bet"`
	NewBalance float64 `json:"newBalance"`
}

// BetListResponse pagina o histórico de apostas do jogador.
type BetListResponse struct {
	Bets  []BetView `json:"bets"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
}

// TransactionView é a linha do ledger na resposta da API.
type TransactionView struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	BalanceBefore float64   `json:"balanceBefore"`
	BalanceAfter  float64   `json:"balanceAfter"`
	Ref           string    `json:"ref"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionListResponse pagina o extrato do jogador.
type TransactionListResponse struct {
	Transactions []TransactionView `json:"transactions"`
	Total        int               `json:"total"`
	Page         int               `json:"page"`
	Pages        int               `json:"pages"`
}

func toBetView(b *Bet) BetView {
	return BetView{
		ID:           b.ID,
		MatchID:      b.MatchID,
		MatchName:    b.MatchName,
		League:       b.League,
		Market:       b.Market,
		Selection:    b.Selection,
		OddsType:     b.OddsType,
		Odds:         b.Odds.InexactFloat64(),
		Stake:        b.Stake.InexactFloat64(),
		PotentialWin: b.PotentialWin.InexactFloat64(),
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
		SettledAt:    b.SettledAt,
	}
}

func toTransactionView(t *Transaction) TransactionView {
	return TransactionView{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount.InexactFloat64(),
		BalanceBefore: t.BalanceBefore.InexactFloat64(),
		BalanceAfter:  t.BalanceAfter.InexactFloat64(),
		Ref:           t.Ref,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
	}
}
