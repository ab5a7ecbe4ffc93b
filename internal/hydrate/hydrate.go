// Package hydrate builds the preloaded state embedded into every page.
//
// A [Hydrator] fetches the catalog and the signed-in user's list concurrently and merges them.
// Hydration never fails: when either fetch fails, the page is rendered with the empty state.
package hydrate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/services"
	"github.com/platfix/platfix/internal/session"
)

// DefaultTimeout bounds the pair of catalog fetches when none is configured.
const DefaultTimeout = 5 * time.Second

// Hydrator turns a [session.Session] into a [models.PreloadedState].
type Hydrator struct {
	catalog services.Catalog
	timeout time.Duration
	logger  *log.Logger
}

// New creates a Hydrator. A non-positive timeout uses [DefaultTimeout].
func New(catalog services.Catalog, timeout time.Duration, logger *log.Logger) *Hydrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Hydrator{catalog: catalog, timeout: timeout, logger: logger}
}

// Hydrate returns the state for sess.
//
// Anonymous sessions get the empty state without touching the API.
func (h *Hydrator) Hydrate(ctx context.Context, sess session.Session) models.PreloadedState {
	if !sess.Authenticated() {
		return models.EmptyState()
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		movies     []models.Movie
		userMovies []models.UserMovie
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = h.catalog.ListMovies(gctx, sess.Token)
		return err
	})
	g.Go(func() error {
		var err error
		userMovies, err = h.catalog.ListUserMovies(gctx, sess.Token, sess.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.Warn("hydration failed, serving empty state", "user", sess.UserID, "error", err)
		return models.EmptyState()
	}

	return models.PreloadedState{
		User:      sess.User(),
		Playing:   models.Movie{},
		MyList:    Merge(movies, userMovies),
		Trends:    Trends(movies),
		Originals: Originals(movies),
	}
}

// Merge joins the user's list with the catalog.
//
// Entries follow userMovies order; a movie listed twice appears twice.
// Rows whose movie is not in the catalog are dropped.
func Merge(movies []models.Movie, userMovies []models.UserMovie) []models.MyListEntry {
	out := []models.MyListEntry{}
	for _, um := range userMovies {
		if um.MovieID == "" {
			continue
		}
		for _, movie := range movies {
			if movie.ID == um.MovieID {
				out = append(out, models.MyListEntry{Movie: movie, UserMovieID: um.ID})
			}
		}
	}
	return out
}

// Trends returns the catalog movies rated [models.RatingTrends].
func Trends(movies []models.Movie) []models.Movie {
	return byRating(movies, models.RatingTrends)
}

// Originals returns the catalog movies rated [models.RatingOriginals].
func Originals(movies []models.Movie) []models.Movie {
	return byRating(movies, models.RatingOriginals)
}

func byRating(movies []models.Movie, rating string) []models.Movie {
	out := []models.Movie{}
	for _, movie := range movies {
		if movie.ContentRating == rating && movie.ID != "" {
			out = append(out, movie)
		}
	}
	return out
}
