package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// SessionVerifier checks a bearer token against the server-side session store
// and returns the username the session belongs to.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Session injects the session identity into the request context when a valid
// bearer token is presented. Requests without a token pass through untouched;
// the endpoints stay usable anonymously and fall back to their defaults.
func Session(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearer(c)
			if token == "" {
				return next(c)
			}
			username, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				// A presented but dead token is rejected rather than
				// silently downgraded to anonymous.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}
			c.Set("username", username)
			return next(c)
		}
	}
}

func extractBearer(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
