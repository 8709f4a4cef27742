package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chanderhat/bet-backend/internal/auth"
	"github.com/chanderhat/bet-backend/internal/bets"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := s.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := s.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.PlayerFrom(r.Context())
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	profile, err := s.auth.Profile(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) liveGames(w http.ResponseWriter, r *http.Request) {
	result := s.odds.FetchLive(r.Context(), sportIDParam(r))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) upcomingGames(w http.ResponseWriter, r *http.Request) {
	day := 1
	if raw := r.URL.Query().Get("day"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			day = n
		}
	}

	result := s.odds.FetchUpcoming(r.Context(), sportIDParam(r), day)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) gameDetails(w http.ResponseWriter, r *http.Request) {
	result := s.odds.FetchEventDetail(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.PlayerFrom(r.Context())
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	var req bets.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := s.bets.PlaceBet(r.Context(), claims.Subject, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) myBets(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.PlayerFrom(r.Context())
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	page, limit := pageParams(r)
	resp, err := s.bets.GetMyBets(r.Context(), claims.Subject, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) myTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.PlayerFrom(r.Context())
	if !ok {
		writeError(w, auth.ErrInvalidToken)
		return
	}

	page, limit := pageParams(r)
	resp, err := s.bets.GetMyTransactions(r.Context(), claims.Subject, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// health informa o estado de cada dependência sem derrubar a resposta:
// dependência fora do ar aparece como "down", o status geral vira "degraded".
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "down"
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err == nil {
			dbStatus = "up"
		}
	}

	redisStatus := "down"
	if s.rdb != nil {
		if err := s.rdb.Ping(r.Context()).Err(); err == nil {
			redisStatus = "up"
		}
	}

	status := "ok"
	if dbStatus != "up" || redisStatus != "up" {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"services": map[string]any{
			"database": dbStatus,
			"redis":    redisStatus,
			"socket": map[string]any{
				"status":           "up",
				"connectedClients": s.hub.ConnectedClients(),
			},
		},
	})
}

// sportIDParam lê o filtro opcional ?sportId= da query string.
func sportIDParam(r *http.Request) *int {
	raw := r.URL.Query().Get("sportId")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func pageParams(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit
}
