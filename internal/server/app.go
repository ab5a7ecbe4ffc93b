package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/platfix/platfix/internal/hydrate"
	"github.com/platfix/platfix/internal/render"
	"github.com/platfix/platfix/internal/services"
	"github.com/platfix/platfix/internal/session"
	"github.com/platfix/platfix/internal/shared"
)

// Options are the collaborators of a [Server].
type Options struct {
	Config   *shared.Config
	Service  services.Service
	Logger   *log.Logger
	Manifest render.Manifest

	// States overrides the hydrator built from Service.
	States StateSource
}

// Server is the platfix HTTP handler: auth bridge, user-list proxy, static assets and pages.
type Server struct {
	router *ChiRouter
	logger *log.Logger
}

// New wires the middleware stack and every route.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("%w: remote API service", shared.ErrMissingConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	cfg := opts.Config

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	states := opts.States
	if states == nil {
		states = hydrate.New(opts.Service, cfg.API.HydrateTimeout.Duration, opts.Logger.WithPrefix("hydrate"))
	}

	onError := NewErrorHandler(opts.Logger)
	router := NewChiRouter(onError)

	router.Use(
		PeerAddr,
		RequestID,
		middleware.RealIP,
		Logger(opts.Logger),
		middleware.Recoverer,
	)
	if cfg.IsDevelopment() {
		router.Use(CORS(cfg.Security.CORSOrigins))
	} else {
		router.Use(SecureHeaders())
	}
	router.Use(session.Middleware)

	validator := NewValidator()
	limiter := NewKeyedRateLimiter(cfg.Security.AuthRateLimit, cfg.Security.AuthBurst)

	router.Handle(http.MethodGet, "/healthz", http.HandlerFunc(health))
	if cfg.Server.StaticDir != "" {
		assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.Server.StaticDir)))
		router.Handle(http.MethodGet, "/assets/*", assets)
	}

	router.With(RateLimit(limiter, cfg.Security.TrustedProxies, onError)).Handler(NewAuthHandler(opts.Service, opts.Service, validator, cfg.IsDevelopment()))
	router.Handler(NewUserMovieHandler(opts.Service, validator))
	router.Handler(NewPageHandler(states, renderer, opts.Manifest))

	router.Fallback(
		func(w http.ResponseWriter, r *http.Request) error {
			return fmt.Errorf("%w: %s", shared.ErrNotFound, r.URL.Path)
		},
		func(w http.ResponseWriter, r *http.Request) error {
			return fmt.Errorf("%w: %s %s", shared.ErrMethodNotAllowed, r.Method, r.URL.Path)
		},
	)

	return &Server{router: router, logger: opts.Logger}, nil
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer returns an [http.Server] for s listening on the configured address.
func (s *Server) HTTPServer(cfg *shared.Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
