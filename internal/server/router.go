package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ErrorHandler writes the response for an error returned by a [HandlerFunc].
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ChiRouter is an HTTP router implementing the [Router] interface.
//
// Uses a [chi.Mux] internally for routing. Middleware is applied when a route is registered,
// so routes only see the middleware added before them.
type ChiRouter struct {
	mux         *chi.Mux
	middlewares []Middleware
	onError     ErrorHandler
}

// NewChiRouter creates a new [ChiRouter] instance.
func NewChiRouter(onError ErrorHandler) *ChiRouter {
	if onError == nil {
		onError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
	return &ChiRouter{
		mux:         chi.NewRouter(),
		middlewares: []Middleware{},
		onError:     onError,
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *ChiRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// With returns a router that shares the routing tree but adds middleware for the routes registered on it.
func (r *ChiRouter) With(middleware ...Middleware) *ChiRouter {
	mws := make([]Middleware, 0, len(r.middlewares)+len(middleware))
	mws = append(mws, r.middlewares...)
	mws = append(mws, middleware...)
	return &ChiRouter{mux: r.mux, middlewares: mws, onError: r.onError}
}

// Handle registers a handler for the specified HTTP method and path.
//
// The handler is wrapped with all registered middleware.
func (r *ChiRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Method(method, path, r.Apply(handler))
}

// Handler registers every route of a custom Handler implementation.
func (r *ChiRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(route.Method, route.Pattern, r.Adapt(route.Handle))
	}
}

// Adapt turns a [HandlerFunc] into an [http.Handler] that reports errors through the error handler.
func (r *ChiRouter) Adapt(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.onError(w, req, err)
		}
	})
}

// Fallback sets the handlers for unmatched paths and methods. Both run through the middleware stack.
func (r *ChiRouter) Fallback(notFound, methodNotAllowed HandlerFunc) {
	r.mux.NotFound(r.Apply(r.Adapt(notFound)).ServeHTTP)
	r.mux.MethodNotAllowed(r.Apply(r.Adapt(methodNotAllowed)).ServeHTTP)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *ChiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *ChiRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
