package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
)

type stubAuthService struct {
	user *domain.User
	err  error
}

func (s *stubAuthService) Register(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubAuthService) Verify(context.Context, string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.user
	return &clone, nil
}

func invoke(t *testing.T, svc *stubAuthService, header string) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Auth(svc)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, err, called
}

func TestAuth_ValidToken_SetsIdentity(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "user-1", Email: "alice@example.com"}}

	c, err, called := invoke(t, svc, "Bearer good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("next handler was not called")
	}
	if got, _ := c.Get(CtxUserID).(string); got != "user-1" {
		t.Errorf("user id in context: want %q, got %q", "user-1", got)
	}
	if got, _ := c.Get(CtxEmail).(string); got != "alice@example.com" {
		t.Errorf("email in context: want %q, got %q", "alice@example.com", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "user-1"}}

	_, err, called := invoke(t, svc, "")
	assertUnauthorized(t, err, called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "user-1"}}

	for _, header := range []string{"Basic abc", "Bearer", "just-a-token"} {
		_, err, called := invoke(t, svc, header)
		assertUnauthorized(t, err, called)
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrInvalidCredentials}

	_, err, called := invoke(t, svc, "Bearer expired-or-forged")
	assertUnauthorized(t, err, called)
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: "user-1", Email: "a@b.com"}}

	_, err, called := invoke(t, svc, "bearer good-token")
	if err != nil || !called {
		t.Fatalf("lowercase scheme must be accepted: err=%v called=%v", err, called)
	}
}

func assertUnauthorized(t *testing.T, err error, called bool) {
	t.Helper()
	if called {
		t.Error("next handler must not run on auth failure")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", he.Code)
	}
}
