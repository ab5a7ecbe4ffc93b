// Movie API implementation of [Service]
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/shared"
)

const (
	moviesPath     = "/api/movies"
	userMoviesPath = "/api/user-movies"
	signInPath     = "/api/auth/sign-in"
	signUpPath     = "/api/auth/sign-up"
)

// MovieService implements [Service] on top of [APIService].
type MovieService struct {
	api         *APIService
	apiKeyToken string
}

// NewMovieService creates a [MovieService].
//
// apiKeyToken is sent on sign-in so the remote API knows which scopes to grant the issued token.
func NewMovieService(api *APIService, apiKeyToken string) *MovieService {
	return &MovieService{api: api, apiKeyToken: apiKeyToken}
}

// ListMovies fetches the full catalog.
func (s *MovieService) ListMovies(ctx context.Context, token string) ([]models.Movie, error) {
	resp, err := s.api.Get(ctx, moviesPath, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var movies []models.Movie
	if err := decodeEnvelope(resp, http.StatusOK, &movies); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// ListUserMovies fetches the movies saved by userID.
func (s *MovieService) ListUserMovies(ctx context.Context, token, userID string) ([]models.UserMovie, error) {
	path := userMoviesPath + "?" + url.Values{"userId": {userID}}.Encode()

	resp, err := s.api.Get(ctx, path, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var userMovies []models.UserMovie
	if err := decodeEnvelope(resp, http.StatusOK, &userMovies); err != nil {
		return nil, fmt.Errorf("list user movies: %w", err)
	}
	return userMovies, nil
}

// CreateUserMovie saves a movie to a user's list.
//
// The remote API must answer 201; any other status is [shared.ErrBadImplementation].
func (s *MovieService) CreateUserMovie(ctx context.Context, token string, in UserMovieInput) (json.RawMessage, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user movie: %w", err)
	}

	resp, err := s.api.Post(ctx, userMoviesPath, token, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: create user movie returned status %d", shared.ErrBadImplementation, resp.StatusCode)
	}

	return rawBody(resp), nil
}

// DeleteUserMovie removes an association by id.
//
// The remote API must answer 200; any other status is [shared.ErrBadImplementation].
func (s *MovieService) DeleteUserMovie(ctx context.Context, token, userMovieID string) (json.RawMessage, error) {
	resp, err := s.api.Delete(ctx, userMoviesPath+"/"+url.PathEscape(userMovieID), token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: delete user movie returned status %d", shared.ErrBadImplementation, resp.StatusCode)
	}

	return rawBody(resp), nil
}

type signInRequest struct {
	APIKeyToken string `json:"apiKeyToken"`
}

type signInResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Authenticate verifies email and password against the remote API using HTTP Basic auth.
//
// Any non-200 answer means the credentials were rejected.
func (s *MovieService) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	data, err := json.Marshal(signInRequest{APIKeyToken: s.apiKeyToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in body: %w", err)
	}

	req, err := s.api.NewRequest(ctx, http.MethodPost, signInPath, data)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(email, password)

	resp, err := s.api.Do(req, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sign-in returned status %d", shared.ErrInvalidCredentials, resp.StatusCode)
	}

	var out signInResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("%w: sign-in body: %v", shared.ErrMalformedResponse, err)
	}
	if out.Token == "" || out.User.ID == "" {
		return nil, fmt.Errorf("%w: sign-in response without token or user id", shared.ErrMalformedResponse)
	}

	return &Identity{Token: out.Token, User: out.User}, nil
}

type signUpResponse struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// SignUp creates an account and returns the new identity.
func (s *MovieService) SignUp(ctx context.Context, in SignUpInput) (models.User, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to marshal sign-up body: %w", err)
	}

	resp, err := s.api.Post(ctx, signUpPath, "", data)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return models.User{}, fmt.Errorf("%w: sign-up returned status %d", shared.ErrUnexpectedStatus, resp.StatusCode)
	}

	var out signUpResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return models.User{}, fmt.Errorf("%w: sign-up body: %v", shared.ErrMalformedResponse, err)
	}

	id := out.ID
	if id == "" && len(out.Data) > 0 {
		// Older API versions answer {"data": "<id>"}.
		_ = json.Unmarshal(out.Data, &id)
	}

	return models.User{ID: id, Email: in.Email, Name: in.Name}, nil
}

// decodeEnvelope checks the status and unmarshals the envelope's data into v.
func decodeEnvelope(resp *APIResponse, want int, v any) error {
	if resp.StatusCode != want {
		return fmt.Errorf("%w: status %d", shared.ErrUnexpectedStatus, resp.StatusCode)
	}

	var env models.Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: missing data", shared.ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return nil
}

// rawBody returns the response body as JSON, substituting `{}` when the API sent nothing.
func rawBody(resp *APIResponse) json.RawMessage {
	if len(resp.Body) == 0 || !resp.IsJSON {
		return json.RawMessage("{}")
	}
	return json.RawMessage(resp.Body)
}
