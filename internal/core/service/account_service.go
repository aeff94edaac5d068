package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quarterlane/networking-api/internal/core/domain"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

// AccountService implements signup, login, logout and full-name lookup.
// Sessions are server-side: login stores a session marker in the
// SessionStore and hands the caller a signed token carrying the session ID,
// so logout is a real revocation rather than a client-side forget.
type AccountService struct {
	repo       ports.AccountRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

// NewAccountService returns an AccountService. A non-positive sessionTTL
// falls back to 24 hours.
func NewAccountService(
	repo ports.AccountRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AccountService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AccountService{
		repo:       repo,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *AccountService) Signup(ctx context.Context, username, password, fullName string) (*domain.Account, error) {
	if username == "" || password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: username, password, or full name is missing", domain.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("account created")
	return created, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username or password is missing", domain.ErrInvalidRequest)
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	sessionID := newSessionID()
	if err := s.sessions.Put(ctx, sessionID, account.ID, s.sessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	token, err := s.signToken(account.Username, sessionID)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info().Str("username", username).Msg("login successful")
	return token, nil
}

// Logout revokes the session named by the token. Invalid or expired tokens
// are not an error: the caller ends up logged out either way.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	sessionID, _, err := s.ParseToken(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with unparseable token")
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AccountService) FullName(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: username is missing", domain.ErrInvalidRequest)
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return account.FullName, nil
}

// Verify parses a session token and confirms the session behind it is still
// live in the SessionStore. It returns the username the session belongs to.
func (s *AccountService) Verify(ctx context.Context, token string) (string, error) {
	sessionID, username, err := s.ParseToken(token)
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return "", err
	}
	return username, nil
}

// ParseToken verifies the token signature and returns the session ID and
// username it carries. The session's liveness is checked separately against
// the SessionStore by the auth middleware.
func (s *AccountService) ParseToken(token string) (sessionID, username string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrSessionNotFound
	}

	sessionID, _ = claims["sid"].(string)
	username, _ = claims["username"].(string)
	if sessionID == "" {
		return "", "", domain.ErrSessionNotFound
	}
	return sessionID, username, nil
}

func (s *AccountService) signToken(username, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"sid":      sessionID,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a 32-hex-char random session identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
