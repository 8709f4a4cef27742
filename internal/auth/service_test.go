package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeStore guarda jogadores em memória.
type fakeStore struct {
	players map[string]*Player // por id
}

func newFakeStore() *fakeStore {
	return &fakeStore{players: make(map[string]*Player)}
}

func (f *fakeStore) Create(ctx context.Context, p *Player) error {
	p.ID = "player-" + p.Username
	p.IsActive = true
	p.CreatedAt = time.Now()
	f.players[p.ID] = p
	return nil
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (*Player, error) {
	for _, p := range f.players {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByUsername(ctx context.Context, username string) (*Player, error) {
	for _, p := range f.players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*Player, error) {
	return f.players[id], nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(zap.NewNop(), store, "test-secret", time.Hour), store
}

func register(t *testing.T, svc *Service) *AuthResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ana@example.com",
		Username: "ana_bet",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return res
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"missing email", RegisterRequest{Username: "ana", Password: "secret123"}, ErrMissingFields},
		{"short password", RegisterRequest{Email: "a@b.c", Username: "ana", Password: "123"}, ErrWeakPassword},
		{"short username", RegisterRequest{Email: "a@b.c", Username: "ab", Password: "secret123"}, ErrBadUsername},
		{"long username", RegisterRequest{Email: "a@b.c", Username: "abcdefghijklmnopqrstu", Password: "secret123"}, ErrBadUsername},
		{"bad chars", RegisterRequest{Email: "a@b.c", Username: "ana bet!", Password: "secret123"}, ErrBadUsername},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "ana@example.com", Username: "other", Password: "secret123"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterRequest{Email: "other@example.com", Username: "ana_bet", Password: "secret123"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)
	ctx := context.Background()

	for _, id := range []string{"ana@example.com", "ana_bet"} {
		res, err := svc.Login(ctx, LoginRequest{EmailOrUsername: id, Password: "secret123"})
		if err != nil {
			t.Errorf("login by %q failed: %v", id, err)
			continue
		}
		if res.Token == "" {
			t.Error("login must return a token")
		}
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, store := newTestService()
	register(t, svc)
	ctx := context.Background()

	if _, err := svc.Login(ctx, LoginRequest{EmailOrUsername: "ana_bet", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{EmailOrUsername: "nobody", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}

	store.players["player-ana_bet"].IsActive = false
	if _, err := svc.Login(ctx, LoginRequest{EmailOrUsername: "ana_bet", Password: "secret123"}); !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("suspended: expected ErrAccountSuspended, got %v", err)
	}
}

func TestVerifyToken_Roundtrip(t *testing.T) {
	svc, _ := newTestService()
	res := register(t, svc)

	claims, err := svc.VerifyToken(res.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != res.Player.ID || claims.Username != "ana_bet" || claims.Email != "ana@example.com" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestVerifyToken_Rejections(t *testing.T) {
	svc, _ := newTestService()
	res := register(t, svc)

	if _, err := svc.VerifyToken("garbage.token.here"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: expected ErrInvalidToken, got %v", err)
	}

	// assinado com outro segredo
	other := NewService(zap.NewNop(), newFakeStore(), "other-secret", time.Hour)
	if _, err := other.VerifyToken(res.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: expected ErrInvalidToken, got %v", err)
	}

	// expirado
	expired, _ := newTestService()
	expired.tokenTTL = -time.Minute
	expRes := register(t, expired)
	if _, err := expired.VerifyToken(expRes.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	svc, _ := newTestService()
	res := register(t, svc)

	var gotClaims *Claims
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = PlayerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+res.Token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotClaims == nil || gotClaims.Subject != res.Player.ID {
			t.Errorf("claims not injected: %+v", gotClaims)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
