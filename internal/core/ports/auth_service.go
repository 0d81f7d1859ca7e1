package ports

import (
	"context"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Verify checks the bearer token's signature and expiry and confirms the
	// subject still exists. Every failure mode maps to an auth error upstream.
	Verify(ctx context.Context, token string) (*domain.User, error)
}
