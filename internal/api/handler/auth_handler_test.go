package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

type stubAccountService struct {
	signupFn   func(ctx context.Context, username, password, fullName string) (*domain.Account, error)
	loginFn    func(ctx context.Context, username, password string) (string, error)
	logoutFn   func(ctx context.Context, token string) error
	fullNameFn func(ctx context.Context, username string) (string, error)
}

func (s *stubAccountService) Signup(ctx context.Context, username, password, fullName string) (*domain.Account, error) {
	return s.signupFn(ctx, username, password, fullName)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAccountService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAccountService) FullName(ctx context.Context, username string) (string, error) {
	return s.fullNameFn(ctx, username)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, username, password, fullName string) (*domain.Account, error) {
			if username != "alice" || password != "s3cret" || fullName != "Alice Doe" {
				t.Fatalf("unexpected args: %s %s %s", username, password, fullName)
			}
			return &domain.Account{Username: username, FullName: fullName}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, _ := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"alice","password":"s3cret","fullName":"Alice Doe"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_MissingField(t *testing.T) {
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, username, password, fullName string) (*domain.Account, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, e := newAuthContext(t, http.MethodPost, "/signup", `{"username":"alice","password":"s3cret"}`)
	if err := h.Signup(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, _ := newAuthContext(t, http.MethodPost, "/login", `{"username":"alice","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _, _ := newAuthContext(t, http.MethodPost, "/login", `{"username":"alice","password":"bad"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
}

func TestAuthHandler_Logout_PassesBearerToken(t *testing.T) {
	var gotToken string
	stub := &stubAccountService{
		logoutFn: func(ctx context.Context, token string) error {
			gotToken = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, _ := newAuthContext(t, http.MethodPost, "/logout", "")
	c.Request().Header.Set("Authorization", "Bearer tok-42")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotToken != "tok-42" {
		t.Fatalf("expected token tok-42, got %q", gotToken)
	}
}

func TestAuthHandler_Logout_WithoutToken(t *testing.T) {
	stub := &stubAccountService{
		logoutFn: func(ctx context.Context, token string) error {
			if token != "" {
				t.Fatalf("expected empty token, got %q", token)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, _ := newAuthContext(t, http.MethodPost, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("logout must answer 200 without a session, got %d", rec.Code)
	}
}

func TestAuthHandler_FullName_Success(t *testing.T) {
	stub := &stubAccountService{
		fullNameFn: func(ctx context.Context, username string) (string, error) {
			if username != "alice" {
				t.Fatalf("unexpected username %q", username)
			}
			return "Alice Doe", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec, _ := newAuthContext(t, http.MethodPost, "/get_fullname", `{"username":"alice"}`)
	if err := h.FullName(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["fullName"] != "Alice Doe" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestAuthHandler_FullName_NotFound(t *testing.T) {
	stub := &stubAccountService{
		fullNameFn: func(ctx context.Context, username string) (string, error) {
			return "", domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, _, _ := newAuthContext(t, http.MethodPost, "/get_fullname", `{"username":"ghost"}`)
	if err := h.FullName(c); err == nil {
		t.Fatal("expected ErrUserNotFound to propagate")
	}
}
