package driven

import (
	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// AuthAdapter handles password hashing and token operations
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword checks if a password matches a hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed JWT from domain claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ValidateToken parses and validates a JWT, returning its claims
	ValidateToken(token string) (*domain.TokenClaims, error)
}
