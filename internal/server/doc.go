// Package server provides HTTP routing, middleware, and the handlers of the platfix web server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [ChiRouter] implementation uses a chi mux internally. Middleware is bound when a route is
// registered, and [ChiRouter.With] scopes extra middleware (the auth rate limiter) to a group of routes.
//
// # Handlers
//
// Handlers return errors instead of writing them. The router passes every returned error to a
// single [ErrorHandler], which maps it with [shared.StatusOf] and writes an [ErrorBody]:
//
//	{"statusCode": 401, "error": "Unauthorized", "message": "Unauthorized"}
//
// Server errors always carry [InternalErrorMessage]; their cause is only logged.
//
//   - [AuthHandler] : POST /auth/sign-in, /auth/sign-up and /auth/sign-out
//   - [UserMovieHandler] : POST /user-movies and DELETE /user-movies/{userMovieId}
//   - [PageHandler] : GET /* (hydrate, render, shell)
//
// # Middleware
//
// Every request gets a request id, a log line and its session read from cookies. Development
// adds CORS for the client dev server; production adds security headers instead.
package server
