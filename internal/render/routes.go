package render

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// View names a page template.
type View string

const (
	ViewHome     View = "home"
	ViewPlayer   View = "player"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewNotFound View = "notfound"
)

// Route binds a path pattern to the view it renders.
type Route struct {
	Pattern string
	View    View
}

// ServerRoutes returns the page routes for a visitor.
//
// Home and player require a session; anonymous visitors get the login view on both.
// Paths matching no route render [ViewNotFound].
func ServerRoutes(logged bool) []Route {
	home, player := ViewLogin, ViewLogin
	if logged {
		home, player = ViewHome, ViewPlayer
	}

	return []Route{
		{Pattern: "/", View: home},
		{Pattern: "/player/{id}", View: player},
		{Pattern: "/login", View: ViewLogin},
		{Pattern: "/register", View: ViewRegister},
	}
}

// routeTable matches paths against a set of [Route]s.
type routeTable struct {
	mux   *chi.Mux
	views map[string]View
}

func newRouteTable(routes []Route) *routeTable {
	t := &routeTable{mux: chi.NewMux(), views: make(map[string]View, len(routes))}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, route := range routes {
		t.mux.Get(route.Pattern, noop)
		t.views[route.Pattern] = route.View
	}
	return t
}

// match returns the view for path and its URL parameters.
func (t *routeTable) match(path string) (View, map[string]string) {
	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return ViewNotFound, nil
	}

	view, ok := t.views[rctx.RoutePattern()]
	if !ok {
		return ViewNotFound, nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return view, params
}
