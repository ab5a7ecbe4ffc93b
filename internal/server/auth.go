package server

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/platfix/platfix/internal/services"
	"github.com/platfix/platfix/internal/session"
	"github.com/platfix/platfix/internal/shared"
)

// AuthHandler bridges browser sign-in and sign-up to the remote API and manages the session cookies.
type AuthHandler struct {
	auth      services.Authenticator
	registrar services.Registrar
	validator *Validator
	dev       bool
}

// NewAuthHandler creates an [AuthHandler]. In development the token cookie is neither HttpOnly nor Secure.
func NewAuthHandler(auth services.Authenticator, registrar services.Registrar, v *Validator, dev bool) *AuthHandler {
	return &AuthHandler{auth: auth, registrar: registrar, validator: v, dev: dev}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/auth/sign-in", Handle: h.SignIn},
		{Method: http.MethodPost, Pattern: "/auth/sign-up", Handle: h.SignUp},
		{Method: http.MethodPost, Pattern: "/auth/sign-out", Handle: h.SignOut},
	}
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *credentials) bindForm(values url.Values) {
	c.Email = values.Get("email")
	c.Password = values.Get("password")
}

type signUpForm struct {
	services.SignUpInput
}

func (f *signUpForm) bindForm(values url.Values) {
	f.Name = values.Get("name")
	f.Email = values.Get("email")
	f.Password = values.Get("password")
}

// SignIn verifies the credentials and issues the session cookies.
//
// Credentials come from HTTP Basic auth, falling back to the request body.
// Missing or unreadable credentials are unauthorized, same as wrong ones.
// The response carries the user but never the token; a form submission is redirected home.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) error {
	var creds credentials
	if email, password, ok := r.BasicAuth(); ok {
		creds = credentials{Email: email, Password: password}
	} else if err := h.validator.Decode(r, &creds); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	identity, err := h.auth.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		return err
	}

	session.Issue(w, identity.Token, identity.User, h.dev)
	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}
	writeJSON(w, http.StatusOK, identity.User)
	return nil
}

// SignUp registers an account and answers 201 with the new user.
// Form submissions are redirected to the login page instead.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) error {
	var form signUpForm
	if err := h.validator.Decode(r, &form); err != nil {
		return err
	}

	user, err := h.registrar.SignUp(r.Context(), form.SignUpInput)
	if err != nil {
		return err
	}

	if isFormPost(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil
	}
	writeJSON(w, http.StatusCreated, user)
	return nil
}

// SignOut clears the session cookies. Form submissions are sent back to the login page.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) error {
	session.Clear(w)
	if isFormPost(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// isFormPost reports whether r came from a plain HTML form, which expects a redirect rather than JSON.
func isFormPost(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/x-www-form-urlencoded"
}
