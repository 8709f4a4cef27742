package bets

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/shared/metrics"
)

// Ledger é o contrato de persistência do serviço de apostas.
type Ledger interface {
	PlaceBet(ctx context.Context, b *Bet) (*Bet, decimal.Decimal, error)
	BetsByPlayer(ctx context.Context, playerID string, offset, limit int) ([]Bet, int, error)
	TransactionsByPlayer(ctx context.Context, playerID string, offset, limit int) ([]Transaction, int, error)
}

// Limites de aposta da casa.
var (
	minStake = decimal.NewFromInt(10)
	maxStake = decimal.NewFromInt(100000)
	minOdds  = decimal.RequireFromString("1.01")
	maxOdds  = decimal.NewFromInt(1000)
	one      = decimal.NewFromInt(1)
)

// Service valida e executa colocação de apostas contra o ledger.
type Service struct {
	log    *zap.Logger
	ledger Ledger
}

func NewService(log *zap.Logger, ledger Ledger) *Service {
	return &Service{log: log, ledger: ledger}
}

// PlaceBet valida a requisição, calcula o retorno potencial em aritmética
// decimal e delega a unidade atômica ao ledger.
func (s *Service) PlaceBet(ctx context.Context, playerID string, req PlaceBetRequest) (*PlaceBetResponse, error) {
	if req.MatchID == "" || req.Selection == "" || req.Odds == 0 || req.Stake == 0 {
		return nil, ErrMissingFields
	}

	stake := decimal.NewFromFloat(req.Stake).Round(2)
	odds := decimal.NewFromFloat(req.Odds).Round(4)

	if stake.LessThan(minStake) {
		return nil, ErrStakeTooLow
	}
	if stake.GreaterThan(maxStake) {
		return nil, ErrStakeTooHigh
	}
	if odds.LessThan(minOdds) || odds.GreaterThan(maxOdds) {
		return nil, ErrInvalidOdds
	}
	if req.OddsType != OddsTypeBack && req.OddsType != OddsTypeLay {
		return nil, ErrInvalidOddsType
	}

	// Back: lucro = stake × (odds − 1). Lay: o modelo simplificado da casa
	// devolve o próprio stake.
	var potentialWin decimal.Decimal
	if req.OddsType == OddsTypeBack {
		potentialWin = stake.Mul(odds.Sub(one)).Round(2)
	} else {
		potentialWin = stake
	}

	bet := &Bet{
		PlayerID:     playerID,
		MatchID:      req.MatchID,
		MatchName:    req.MatchName,
		League:       req.League,
		Market:       req.Market,
		Selection:    req.Selection,
		OddsType:     req.OddsType,
		Odds:         odds,
		Stake:        stake,
		PotentialWin: potentialWin,
	}

	created, newBalance, err := s.ledger.PlaceBet(ctx, bet)
	if err != nil {
		return nil, err
	}

	metrics.BetsPlaced.Inc()
	s.log.Info("bet placed",
		zap.String("bet_id", created.ID),
		zap.String("player_id", playerID),
		zap.String("stake", stake.StringFixed(2)),
	)

	return &PlaceBetResponse{
		Bet:        toBetView(created),
		NewBalance: newBalance.InexactFloat64(),
	}, nil
}

// GetMyBets retorna o histórico paginado de apostas do jogador.
func (s *Service) GetMyBets(ctx context.Context, playerID string, page, limit int) (*BetListResponse, error) {
	page, limit = normalizePage(page, limit)

	list, total, err := s.ledger.BetsByPlayer(ctx, playerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	views := make([]BetView, 0, len(list))
	for i := range list {
		views = append(views, toBetView(&list[i]))
	}

	return &BetListResponse{
		Bets:  views,
		Total: total,
		Page:  page,
		Pages: pageCount(total, limit),
	}, nil
}

// GetMyTransactions retorna o extrato paginado do jogador.
func (s *Service) GetMyTransactions(ctx context.Context, playerID string, page, limit int) (*TransactionListResponse, error) {
	page, limit = normalizePage(page, limit)

	list, total, err := s.ledger.TransactionsByPlayer(ctx, playerID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(list))
	for i := range list {
		views = append(views, toTransactionView(&list[i]))
	}

	return &TransactionListResponse{
		Transactions: views,
		Total:        total,
		Page:         page,
		Pages:        pageCount(total, limit),
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
