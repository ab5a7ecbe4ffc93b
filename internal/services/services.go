package services

import (
	"context"
	"encoding/json"

	"github.com/platfix/platfix/internal/models"
)

// Catalog reads the movie catalog and a user's saved movies.
type Catalog interface {
	// ListMovies returns the full catalog in API order.
	ListMovies(ctx context.Context, token string) ([]models.Movie, error)

	// ListUserMovies returns the user-movie associations for userID in API order.
	ListUserMovies(ctx context.Context, token, userID string) ([]models.UserMovie, error)
}

// Authenticator verifies credentials and returns the session material for them.
//
// It is the pluggable sign-in strategy; the default implementation asks the remote API.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
}

// Registrar creates new accounts.
type Registrar interface {
	SignUp(ctx context.Context, in SignUpInput) (models.User, error)
}

// UserMovies writes to a user's list. Both calls return the remote body verbatim.
type UserMovies interface {
	CreateUserMovie(ctx context.Context, token string, in UserMovieInput) (json.RawMessage, error)
	DeleteUserMovie(ctx context.Context, token, userMovieID string) (json.RawMessage, error)
}

// Service is everything the web client needs from the remote API.
type Service interface {
	Catalog
	Authenticator
	Registrar
	UserMovies
}

// Identity is a verified user plus the opaque token that authorizes calls on their behalf.
type Identity struct {
	Token string
	User  models.User
}

// SignUpInput is the payload forwarded on sign-up.
type SignUpInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserMovieInput is the payload forwarded when saving a movie to a list.
type UserMovieInput struct {
	UserID  string `json:"userId" validate:"required"`
	MovieID string `json:"movieId" validate:"required"`
}
