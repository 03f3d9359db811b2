package driving

import (
	"context"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// AuthService handles authentication operations
type AuthService interface {
	// Login authenticates a user and creates a session
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	// Refresh exchanges a refresh token for a new token pair
	Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates the session behind a token
	Logout(ctx context.Context, token string) error

	// Authenticate validates a token and returns the auth context
	Authenticate(ctx context.Context, token string) (*domain.AuthContext, error)

	// Setup creates the first admin account. Returns ErrAlreadyExists once
	// any user exists.
	Setup(ctx context.Context, req *domain.SetupRequest) (*domain.LoginResponse, error)
}
