package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/platfix/platfix/internal/models"
)

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestIssue(t *testing.T) {
	user := models.User{ID: "u1", Email: "ana@example.com", Name: "Ana María"}

	t.Run("Production", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Issue(rec, "tok", user, false)

		cookies := cookiesByName(rec)
		token, ok := cookies[CookieToken]
		if !ok {
			t.Fatal("expected token cookie")
		}
		if token.Value != "tok" || !token.HttpOnly || !token.Secure {
			t.Errorf("unexpected token cookie %+v", token)
		}
		if cookies[CookieID].HttpOnly {
			t.Error("expected id cookie to be readable by the client")
		}
	})

	t.Run("Development", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Issue(rec, "tok", user, true)

		token := cookiesByName(rec)[CookieToken]
		if token.HttpOnly || token.Secure {
			t.Errorf("expected plain token cookie in development, got %+v", token)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Issue(rec, "tok", user, true)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		s := FromRequest(req)
		if s.Token != "tok" || s.User() != user {
			t.Errorf("unexpected session %+v", s)
		}
		if !s.Authenticated() {
			t.Error("expected authenticated session")
		}
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("No Cookies", func(t *testing.T) {
		s := FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
		if s != (Session{}) {
			t.Errorf("expected zero session, got %+v", s)
		}
		if s.HasToken() || s.Authenticated() || !s.User().IsZero() {
			t.Error("expected anonymous session")
		}
	})

	t.Run("Token Without ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieToken, Value: "tok"})

		s := FromRequest(req)
		if !s.HasToken() || s.Authenticated() {
			t.Errorf("expected token-only session, got %+v", s)
		}
	})
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	Clear(rec)

	cookies := cookiesByName(rec)
	for _, name := range []string{CookieToken, CookieID, CookieEmail, CookieName} {
		c, ok := cookies[name]
		if !ok {
			t.Errorf("expected %s cookie to be cleared", name)
			continue
		}
		if c.MaxAge >= 0 {
			t.Errorf("expected %s cookie to expire, got MaxAge %d", name, c.MaxAge)
		}
	}
}

func TestMiddleware(t *testing.T) {
	var got Session
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: CookieID, Value: "u1"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got.Token != "tok" || got.UserID != "u1" {
		t.Errorf("unexpected session in context %+v", got)
	}

	if s := FromContext(context.Background()); s != (Session{}) {
		t.Errorf("expected zero session from empty context, got %+v", s)
	}
}
