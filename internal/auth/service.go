package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Claims carrega a identidade do jogador no token de sessão.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service registra e autentica jogadores e emite/verifica tokens de sessão.
type Service struct {
	log      *zap.Logger
	store    PlayerStore
	secret   []byte
	tokenTTL time.Duration
}

func NewService(log *zap.Logger, store PlayerStore, secret string, tokenTTL time.Duration) *Service {
	return &Service{log: log, store: store, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *Service) signToken(p *Player) (string, error) {
	claims := Claims{
		Email:    p.Email,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Register cria o jogador com saldo zero e já devolve uma sessão.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < 6 {
		return nil, ErrWeakPassword
	}
	if !usernameRe.MatchString(req.Username) {
		return nil, ErrBadUsername
	}

	if existing, err := s.store.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.store.FindByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, err
	}

	player := &Player{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.store.Create(ctx, player); err != nil {
		return nil, err
	}

	s.log.Info("player registered", zap.String("player_id", player.ID))

	token, err := s.signToken(player)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Player: toPlayerView(player)}, nil
}

// Login autentica por email ou username.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	player, err := s.store.FindByEmail(ctx, req.EmailOrUsername)
	if err != nil {
		return nil, err
	}
	if player == nil {
		if player, err = s.store.FindByUsername(ctx, req.EmailOrUsername); err != nil {
			return nil, err
		}
	}
	if player == nil {
		return nil, ErrInvalidCredentials
	}
	if !player.IsActive {
		return nil, ErrAccountSuspended
	}

	if bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(player)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Player: toPlayerView(player)}, nil
}

// VerifyToken valida o token de sessão e devolve a identidade do jogador.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Profile devolve o perfil do jogador autenticado, com saldo atual.
func (s *Service) Profile(ctx context.Context, playerID string) (*PlayerView, error) {
	player, err := s.store.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	view := toPlayerView(player)
	return &view, nil
}
