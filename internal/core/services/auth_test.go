package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driven/mocks"
	"github.com/auslex-labs/auslex-core/internal/core/ports/driving"
)

func newAuthFixture(t *testing.T) (driving.AuthService, *mocks.MockUserStore, *mocks.MockSessionStore) {
	t.Helper()

	users := mocks.NewMockUserStore()
	sessions := mocks.NewMockSessionStore()
	adapter := mocks.NewMockAuthAdapter()

	hash, _ := adapter.HashPassword("correct-password")
	_ = users.Save(context.Background(), &domain.User{
		ID:           "user-1",
		Email:        "researcher@example.com",
		Name:         "Researcher",
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Active:       true,
	})

	return NewAuthService(users, sessions, adapter), users, sessions
}

func TestLoginSuccess(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	resp, err := auth.Login(context.Background(), &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected token pair")
	}
	if resp.User == nil || resp.User.Email != "researcher@example.com" {
		t.Errorf("expected user summary, got %+v", resp.User)
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Error("expected future expiry")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, err := auth.Login(context.Background(), &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, err := auth.Login(context.Background(), &domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "anything",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	auth, users, _ := newAuthFixture(t)

	user, _ := users.Get(context.Background(), "user-1")
	user.Active = false
	_ = users.Save(context.Background(), user)

	_, err := auth.Login(context.Background(), &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "correct-password",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	resp, err := auth.Login(context.Background(), &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authCtx, err := auth.Authenticate(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authCtx.UserID != "user-1" || authCtx.Role != domain.RoleMember {
		t.Errorf("unexpected auth context %+v", authCtx)
	}
}

func TestAuthenticateAfterLogout(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := auth.Login(ctx, &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := auth.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := auth.Authenticate(ctx, resp.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := auth.Login(ctx, &domain.LoginRequest{
		Email:    "researcher@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := auth.Refresh(ctx, &domain.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected refresh token rotation")
	}

	// Old session is gone
	if _, err := auth.Authenticate(ctx, resp.Token); err == nil {
		t.Error("expected old token invalid after refresh")
	}
	// New token works
	if _, err := auth.Authenticate(ctx, refreshed.Token); err != nil {
		t.Errorf("expected new token valid, got %v", err)
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, err := auth.Refresh(context.Background(), &domain.RefreshRequest{RefreshToken: "bogus"})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	if _, err := auth.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := auth.Authenticate(context.Background(), ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for empty token, got %v", err)
	}
}
