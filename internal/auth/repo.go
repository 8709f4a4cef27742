package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PlayerStore é o contrato de persistência de jogadores. Ausência é
// (nil, nil), não erro.
type PlayerStore interface {
	Create(ctx context.Context, p *Player) error
	FindByEmail(ctx context.Context, email string) (*Player, error)
	FindByUsername(ctx context.Context, username string) (*Player, error)
	FindByID(ctx context.Context, id string) (*Player, error)
}

// Postgres implementa PlayerStore em banco Postgres.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Create(ctx context.Context, pl *Player) error {
	pl.ID = uuid.NewString()
	pl.IsActive = true
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO players (id,email,username,password_hash,balance,is_active)
		VALUES ($1,$2,$3,$4,'0.00',true)
		RETURNING created_at`,
		pl.ID, pl.Email, pl.Username, pl.PasswordHash,
	).Scan(&pl.CreatedAt)
	return mapUniqueViolation(err)
}

// mapUniqueViolation traduz violação de unicidade do Postgres pro erro de
// domínio: dois registros concorrentes com o mesmo email/username passam
// pelas checagens prévias e o segundo morre na constraint.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	if strings.Contains(pqErr.Constraint, "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func (p *Postgres) FindByEmail(ctx context.Context, email string) (*Player, error) {
	return p.scanOne(ctx, `WHERE email=$1`, email)
}

func (p *Postgres) FindByUsername(ctx context.Context, username string) (*Player, error) {
	return p.scanOne(ctx, `WHERE username=$1`, username)
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*Player, error) {
	return p.scanOne(ctx, `WHERE id=$1`, id)
}

func (p *Postgres) scanOne(ctx context.Context, where string, arg any) (*Player, error) {
	var pl Player
	var balance string
	err := p.db.QueryRowContext(ctx, `
		SELECT id,email,username,password_hash,balance,is_active,created_at
		FROM players `+where, arg,
	).Scan(&pl.ID, &pl.Email, &pl.Username, &pl.PasswordHash, &balance, &pl.IsActive, &pl.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pl.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, err
	}
	return &pl, nil
}
