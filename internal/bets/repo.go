package bets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Postgres implementa o ledger de apostas em banco Postgres.
type Postgres struct {
	db *sql.DB

	// hook de teste: injeta falha após o débito e antes do insert da aposta
	beforeInsertBet func() error
}

// NewPostgres retorna uma instância do repositório do ledger.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// PlaceBet executa a colocação da aposta como unidade atômica: relê o
// jogador com lock, debita o saldo, insere a aposta e a linha de auditoria.
// Qualquer falha desfaz tudo. A concorrência entre apostas do mesmo jogador
// é serializada pelo lock pessimista na linha do jogador.
func (p *Postgres) PlaceBet(ctx context.Context, b *Bet) (*Bet, decimal.Decimal, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback()

	var balanceStr string
	var isActive bool
	err = tx.QueryRowContext(ctx,
		`SELECT balance, is_active FROM players WHERE id=$1 FOR UPDATE`,
		b.PlayerID).Scan(&balanceStr, &isActive)
	if err == sql.ErrNoRows {
		return nil, decimal.Zero, ErrPlayerNotFound
	}
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !isActive {
		return nil, decimal.Zero, ErrAccountSuspended
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("parse balance: %w", err)
	}

	if balance.LessThan(b.Stake) {
		return nil, decimal.Zero, fmt.Errorf("%w: required %s, available %s",
			ErrInsufficientFunds, b.Stake.StringFixed(2), balance.StringFixed(2))
	}

	balanceAfter := balance.Sub(b.Stake)

	if _, err = tx.ExecContext(ctx,
		`UPDATE players SET balance=$1 WHERE id=$2`,
		balanceAfter.StringFixed(2), b.PlayerID); err != nil {
		return nil, decimal.Zero, err
	}

	if p.beforeInsertBet != nil {
		if err := p.beforeInsertBet(); err != nil {
			return nil, decimal.Zero, err
		}
	}

	b.ID = uuid.NewString()
	b.Status = StatusPending
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bets (id,player_id,match_id,match_name,league,market,selection,odds_type,odds,stake,potential_win,status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at`,
		b.ID, b.PlayerID, b.MatchID, b.MatchName, b.League, b.Market, b.Selection,
		b.OddsType, b.Odds.StringFixed(4), b.Stake.StringFixed(2), b.PotentialWin.StringFixed(2), b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		return nil, decimal.Zero, err
	}

	note := fmt.Sprintf("Bet on %s - %s @ %s", b.MatchName, b.Selection, b.Odds.StringFixed(2))
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id,player_id,type,amount,balance_before,balance_after,ref,note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		uuid.NewString(), b.PlayerID, TxnBetPlaced, b.Stake.Neg().StringFixed(2),
		balance.StringFixed(2), balanceAfter.StringFixed(2), b.ID, note,
	); err != nil {
		return nil, decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return nil, decimal.Zero, err
	}

	return b, balanceAfter, nil
}

// BetsByPlayer lista as apostas do jogador, mais recentes primeiro.
func (p *Postgres) BetsByPlayer(ctx context.Context, playerID string, offset, limit int) ([]Bet, int, error) {
	var total int
	if err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bets WHERE player_id=$1`, playerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id,match_id,match_name,league,market,selection,odds_type,odds,stake,potential_win,status,created_at,settled_at
		FROM bets WHERE player_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, playerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		var b Bet
		var odds, stake, win string
		if err := rows.Scan(&b.ID, &b.MatchID, &b.MatchName, &b.League, &b.Market, &b.Selection,
			&b.OddsType, &odds, &stake, &win, &b.Status, &b.CreatedAt, &b.SettledAt); err != nil {
			return nil, 0, err
		}
		b.PlayerID = playerID
		b.Odds, _ = decimal.NewFromString(odds)
		b.Stake, _ = decimal.NewFromString(stake)
		b.PotentialWin, _ = decimal.NewFromString(win)
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// TransactionsByPlayer lista o extrato do jogador, mais recente primeiro.
func (p *Postgres) TransactionsByPlayer(ctx context.Context, playerID string, offset, limit int) ([]Transaction, int, error) {
	var total int
	if err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE player_id=$1`, playerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id,type,amount,balance_before,balance_after,ref,note,created_at
		FROM transactions WHERE player_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, playerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		var amount, before, after string
		if err := rows.Scan(&t.ID, &t.Type, &amount, &before, &after, &t.Ref, &t.Note, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		t.PlayerID = playerID
		t.Amount, _ = decimal.NewFromString(amount)
		t.BalanceBefore, _ = decimal.NewFromString(before)
		t.BalanceAfter, _ = decimal.NewFromString(after)
		out = append(out, t)
	}
	return out, total, rows.Err()
}
