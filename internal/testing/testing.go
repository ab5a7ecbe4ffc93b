// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/platfix/platfix/internal/models"
)

// FakeToken is the only bearer token [FakeAPI] accepts.
const FakeToken = "fake-token"

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error

	mu       sync.Mutex
	requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.response, m.err
}

// Requests returns every request seen so far.
func (m *MockRoundTripper) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// MockCatalog is a test double for services.Catalog
type MockCatalog struct {
	Movies        []models.Movie
	UserMovies    []models.UserMovie
	MoviesErr     error
	UserMoviesErr error

	// Block makes both calls wait for context cancellation.
	Block bool
}

func (m *MockCatalog) ListMovies(ctx context.Context, token string) ([]models.Movie, error) {
	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.Movies, m.MoviesErr
}

func (m *MockCatalog) ListUserMovies(ctx context.Context, token, userID string) ([]models.UserMovie, error) {
	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.UserMovies, m.UserMoviesErr
}

// FakeAccount is a user known to [FakeAPI].
type FakeAccount struct {
	Password string
	User     models.User
}

// RecordedRequest is what [FakeAPI] remembers about a call.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          []byte
}

// FakeAPI is an in-process stand-in for the remote movie API.
//
// Configure the exported fields before issuing requests.
type FakeAPI struct {
	*httptest.Server

	Movies     []models.Movie
	UserMovies []models.UserMovie
	Accounts   map[string]FakeAccount // keyed by email

	// Status overrides; zero keeps the normal status.
	MoviesStatus     int
	UserMoviesStatus int
	CreateStatus     int
	DeleteStatus     int
	SignUpStatus     int

	// DeleteBody is returned verbatim from DELETE /api/user-movies/{id}.
	DeleteBody string

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeAPI starts a [FakeAPI] that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		Accounts:   map[string]FakeAccount{},
		DeleteBody: `{"data":"deleted","message":"user movie deleted"}`,
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Post("/api/auth/sign-in", f.signIn)
	r.Post("/api/auth/sign-up", f.signUp)
	r.Group(func(r chi.Router) {
		r.Use(f.requireBearer)
		r.Get("/api/movies", f.listMovies)
		r.Get("/api/user-movies", f.listUserMovies)
		r.Post("/api/user-movies", f.createUserMovie)
		r.Delete("/api/user-movies/{id}", f.deleteUserMovie)
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

// Requests returns every request seen so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		f.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) signIn(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	account, known := f.Accounts[email]
	if !ok || !known || account.Password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": FakeToken, "user": account.User})
}

func (f *FakeAPI) signUp(w http.ResponseWriter, r *http.Request) {
	if f.SignUpStatus != 0 {
		writeJSON(w, f.SignUpStatus, map[string]string{"error": "rejected"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"data": "new-user-id", "message": "user created"})
}

func (f *FakeAPI) listMovies(w http.ResponseWriter, r *http.Request) {
	if f.MoviesStatus != 0 {
		writeJSON(w, f.MoviesStatus, map[string]string{"error": "failed"})
		return
	}
	movies := f.Movies
	if movies == nil {
		movies = []models.Movie{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": movies, "message": "movies listed"})
}

func (f *FakeAPI) listUserMovies(w http.ResponseWriter, r *http.Request) {
	if f.UserMoviesStatus != 0 {
		writeJSON(w, f.UserMoviesStatus, map[string]string{"error": "failed"})
		return
	}
	userID := r.URL.Query().Get("userId")
	out := []models.UserMovie{}
	for _, um := range f.UserMovies {
		if um.UserID == userID {
			out = append(out, um)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "message": "user movies listed"})
}

func (f *FakeAPI) createUserMovie(w http.ResponseWriter, r *http.Request) {
	status := http.StatusCreated
	if f.CreateStatus != 0 {
		status = f.CreateStatus
	}
	writeJSON(w, status, map[string]string{"data": "new-user-movie-id", "message": "user movie created"})
}

func (f *FakeAPI) deleteUserMovie(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if f.DeleteStatus != 0 {
		status = f.DeleteStatus
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, f.DeleteBody)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
