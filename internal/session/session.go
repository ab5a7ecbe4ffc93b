// Package session reads and writes the cookie-backed browser session.
//
// A session is four cookies: token (HttpOnly outside development), id, email and name.
// The token is forwarded to the remote API as is; it is never parsed here.
package session

import (
	"context"
	"net/http"
	"net/url"

	"github.com/platfix/platfix/internal/models"
)

// Cookie names.
const (
	CookieToken = "token"
	CookieID    = "id"
	CookieEmail = "email"
	CookieName  = "name"
)

// Session is the identity carried by a request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Token  string
}

// HasToken reports whether remote calls can be made on behalf of the session.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// Authenticated reports whether both the token and the user id are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.UserID != ""
}

// User returns the public part of the session.
func (s Session) User() models.User {
	return models.User{ID: s.UserID, Email: s.Email, Name: s.Name}
}

// FromRequest reads the session cookies. Missing cookies leave fields empty.
func FromRequest(r *http.Request) Session {
	return Session{
		UserID: cookieValue(r, CookieID),
		Email:  cookieValue(r, CookieEmail),
		Name:   cookieValue(r, CookieName),
		Token:  rawCookie(r, CookieToken),
	}
}

// Issue writes the session cookies for user and token.
//
// The token cookie is HttpOnly and Secure unless dev is set.
func Issue(w http.ResponseWriter, token string, user models.User, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieToken,
		Value:    token,
		Path:     "/",
		HttpOnly: !dev,
		Secure:   !dev,
		SameSite: http.SameSiteLaxMode,
	})

	for name, value := range map[string]string{
		CookieID:    user.ID,
		CookieEmail: user.Email,
		CookieName:  user.Name,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    url.PathEscape(value),
			Path:     "/",
			Secure:   !dev,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Clear expires every session cookie.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieToken, CookieID, CookieEmail, CookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
}

type contextKey string

const sessionKey contextKey = "session"

// WithContext stores s in ctx.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored by [Middleware] or [WithContext].
// The zero Session is returned when there is none.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s
	}
	return Session{}
}

// Middleware reads the session cookies once and attaches the result to the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithContext(r.Context(), FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func rawCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func cookieValue(r *http.Request, name string) string {
	v := rawCookie(r, name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
