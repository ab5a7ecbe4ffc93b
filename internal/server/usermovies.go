package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platfix/platfix/internal/services"
	"github.com/platfix/platfix/internal/session"
	"github.com/platfix/platfix/internal/shared"
)

// UserMovieHandler proxies user-list writes to the remote API with the session's bearer token.
type UserMovieHandler struct {
	svc       services.UserMovies
	validator *Validator
}

// NewUserMovieHandler creates a [UserMovieHandler].
func NewUserMovieHandler(svc services.UserMovies, v *Validator) *UserMovieHandler {
	return &UserMovieHandler{svc: svc, validator: v}
}

// Routes returns the HTTP routes this handler serves.
func (h *UserMovieHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/user-movies", Handle: h.Create},
		{Method: http.MethodDelete, Pattern: "/user-movies/{userMovieId}", Handle: h.Delete},
	}
}

// Create saves a movie to the user's list and relays the remote body with 201.
func (h *UserMovieHandler) Create(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	if !sess.HasToken() {
		return fmt.Errorf("%w: no session token", shared.ErrNotAuthenticated)
	}

	var in services.UserMovieInput
	if err := h.validator.Decode(r, &in); err != nil {
		return err
	}

	body, err := h.svc.CreateUserMovie(r.Context(), sess.Token, in)
	if err != nil {
		return err
	}

	writeRaw(w, http.StatusCreated, body)
	return nil
}

// Delete removes an entry from the user's list and relays the remote body with 200.
func (h *UserMovieHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	sess := session.FromContext(r.Context())
	if !sess.HasToken() {
		return fmt.Errorf("%w: no session token", shared.ErrNotAuthenticated)
	}

	id := chi.URLParam(r, "userMovieId")
	if id == "" {
		return fmt.Errorf("%w: userMovieId", shared.ErrMissingArgument)
	}

	body, err := h.svc.DeleteUserMovie(r.Context(), sess.Token, id)
	if err != nil {
		return err
	}

	writeRaw(w, http.StatusOK, body)
	return nil
}
