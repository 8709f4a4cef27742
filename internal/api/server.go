package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chanderhat/bet-backend/internal/auth"
	"github.com/chanderhat/bet-backend/internal/bets"
	"github.com/chanderhat/bet-backend/internal/liveodds"
	"github.com/chanderhat/bet-backend/internal/ws"
)

// Server expõe a API REST pública: auth, jogos ao vivo e apostas.
type Server struct {
	log  *zap.Logger
	auth *auth.Service
	bets *bets.Service
	odds *liveodds.Service
	hub  *ws.Hub
	db   *sql.DB
	rdb  *redis.Client // nil quando o Redis está desabilitado
}

func NewServer(log *zap.Logger, a *auth.Service, b *bets.Service, o *liveodds.Service, hub *ws.Hub, db *sql.DB, rdb *redis.Client) *Server {
	return &Server{log: log, auth: a, bets: b, odds: o, hub: hub, db: db, rdb: rdb}
}

// Router monta as rotas públicas. Rotas de aposta e perfil exigem sessão.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/register", s.register)
	r.Post("/auth/login", s.login)

	r.Get("/games/live", s.liveGames)
	r.Get("/games/upcoming", s.upcomingGames)
	r.Get("/games/{id}", s.gameDetails)

	r.Get("/health", s.health)
	r.Get("/ws", s.hub.HandleWS)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Get("/auth/me", s.me)
		r.Post("/bets", s.placeBet)
		r.Get("/bets/my", s.myBets)
		r.Get("/bets/transactions", s.myTransactions)
	})

	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError mapeia o erro pro status HTTP da taxonomia da API.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bets.ErrMissingFields),
		errors.Is(err, bets.ErrStakeTooLow),
		errors.Is(err, bets.ErrStakeTooHigh),
		errors.Is(err, bets.ErrInvalidOdds),
		errors.Is(err, bets.ErrInvalidOddsType),
		errors.Is(err, bets.ErrInsufficientFunds),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrBadUsername):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, bets.ErrAccountSuspended),
		errors.Is(err, auth.ErrAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, bets.ErrPlayerNotFound),
		errors.Is(err, auth.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, auth.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
