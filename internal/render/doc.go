// Package render turns a preloaded state into HTML.
//
// # Routes
//
// [ServerRoutes] lists the page routes for a signed-in or anonymous visitor. Paths are matched
// with a chi route tree, so `/player/{id}` behaves exactly like the HTTP routes of the server.
//
// # Views
//
// [Renderer] executes the embedded html/template views (home, player, login, register,
// not-found) against a [models.PreloadedState]. Rendering is pure: it makes no network
// calls and never modifies the state.
//
// # Shell
//
// [BuildShell] wraps rendered markup into the full document, embedding the state as
// `window.__PRELOADED_STATE__` and linking the assets listed in the [Manifest].
package render
