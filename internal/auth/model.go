package auth

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Player é o jogador persistido. O saldo só muda pelo ledger de apostas, em
// transação.
type Player struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Balance      decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
}

// PlayerView é o jogador na resposta da API.
type PlayerView struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
}

// RegisterRequest é o corpo de POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest aceita email ou username no mesmo campo.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// AuthResponse devolve o token de sessão e o jogador.
type AuthResponse struct {
	Token  string     `json:"token"`
	Player PlayerView `json:"player"`
}

var (
	ErrMissingFields      = errors.New("all fields required")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrBadUsername        = errors.New("username: 3-20 alphanumeric chars/underscores only")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPlayerNotFound     = errors.New("player not found")
)

func toPlayerView(p *Player) PlayerView {
	return PlayerView{
		ID:       p.ID,
		Email:    p.Email,
		Username: p.Username,
		Balance:  p.Balance.InexactFloat64(),
	}
}
