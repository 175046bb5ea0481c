package identity

import (
	"context"
	"strings"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

type Verifier interface {
	// VerifyIDToken returns the uid the token was issued for.
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

//go:generate mockery --name Provider --output ./mocks
type Provider interface {
	Verifier
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", apperr.New(apperr.ErrUnauthenticated, "Missing token")
	}

	return strings.TrimSpace(token), nil
}
