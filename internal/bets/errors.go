package bets

import "errors"

// Erros de validação, rejeitados antes de abrir a transação.
var (
	ErrMissingFields   = errors.New("missing required bet fields")
	ErrStakeTooLow     = errors.New("minimum stake is 10")
	ErrStakeTooHigh    = errors.New("maximum stake is 100000")
	ErrInvalidOdds     = errors.New("odds must be between 1.01 and 1000")
	ErrInvalidOddsType = errors.New("odds type must be Back or Lay")
)

// Erros de regra de negócio, levantados dentro da transação antes de
// qualquer escrita efetivar.
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrAccountSuspended  = errors.New("account suspended")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
