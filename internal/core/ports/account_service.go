package ports

import (
	"context"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

// AccountService covers signup, login, logout and profile lookup.
type AccountService interface {
	Signup(ctx context.Context, username, password, fullName string) (*domain.Account, error)
	// Login verifies credentials and establishes a server-side session,
	// returning the signed session token the caller presents on later
	// requests.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout revokes the session behind the given token. It succeeds even
	// when the token is invalid or the session already gone.
	Logout(ctx context.Context, token string) error
	// FullName returns the stored full name for a username.
	FullName(ctx context.Context, username string) (string, error)
}
