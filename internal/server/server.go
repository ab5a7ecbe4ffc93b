// package server contains middleware & handlers for the platfix web server
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// HandlerFunc is an HTTP handler that reports failures instead of writing them.
//
// Returned errors are rendered by the router's error handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Route binds a [HandlerFunc] to a method and chi path pattern.
type Route struct {
	Method  string
	Pattern string
	Handle  HandlerFunc
}

// Handler groups related routes (auth, user movies, pages).
type Handler interface {
	Routes() []Route // Routes returns the routes this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and dispatch requests.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers every route of a [Handler]
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
