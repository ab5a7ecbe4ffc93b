package server

import (
	"context"
	"io"
	"net/http"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/render"
	"github.com/platfix/platfix/internal/session"
)

// StateSource produces the preloaded state for a session. [hydrate.Hydrator] is the production source.
type StateSource interface {
	Hydrate(ctx context.Context, sess session.Session) models.PreloadedState
}

// PageHandler server-renders every page route.
type PageHandler struct {
	states   StateSource
	renderer *render.Renderer
	manifest render.Manifest
}

// NewPageHandler creates a [PageHandler]. A nil manifest links the default asset paths.
func NewPageHandler(states StateSource, renderer *render.Renderer, manifest render.Manifest) *PageHandler {
	return &PageHandler{states: states, renderer: renderer, manifest: manifest}
}

// Routes returns the HTTP routes this handler serves.
func (h *PageHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/*", Handle: h.Render},
	}
}

// Render hydrates the state, renders the matched view and writes the full document.
// Unknown paths still render a page, with status 404.
func (h *PageHandler) Render(w http.ResponseWriter, r *http.Request) error {
	state := h.states.Hydrate(r.Context(), session.FromContext(r.Context()))

	page, err := h.renderer.Render(state, r.URL.Path)
	if err != nil {
		return err
	}

	doc, err := render.BuildShell(page.Markup, state, h.manifest)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if page.NotFound() {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, doc)
	return nil
}
