package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubVerifier struct {
	username string
	err      error
	called   bool
}

func (s *stubVerifier) Verify(_ context.Context, token string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.username, nil
}

func runSession(t *testing.T, verifier *stubVerifier, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(verifier)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestSession_NoTokenPassesThrough(t *testing.T) {
	verifier := &stubVerifier{}
	rec, c := runSession(t, verifier, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verifier.called {
		t.Error("verifier must not run without a token")
	}
	if username, _ := c.Get("username").(string); username != "" {
		t.Errorf("no identity expected, got %q", username)
	}
}

func TestSession_ValidTokenInjectsUsername(t *testing.T) {
	verifier := &stubVerifier{username: "alice"}
	rec, c := runSession(t, verifier, "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if username, _ := c.Get("username").(string); username != "alice" {
		t.Errorf("expected username alice in context, got %q", username)
	}
}

func TestSession_DeadTokenRejected(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("gone")}
	rec, _ := runSession(t, verifier, "Bearer stale-token")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSession_MalformedHeaderTreatedAsAnonymous(t *testing.T) {
	verifier := &stubVerifier{}
	rec, _ := runSession(t, verifier, "Token abc")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verifier.called {
		t.Error("verifier must not run for a non-bearer header")
	}
}
