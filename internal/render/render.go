package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/shared"
)

//go:embed templates
var templateFS embed.FS

var views = []View{ViewHome, ViewPlayer, ViewLogin, ViewRegister, ViewNotFound}

// Page is a rendered view.
type Page struct {
	Markup string
	View   View
}

// NotFound reports whether no page matched the requested path.
func (p Page) NotFound() bool {
	return p.View == ViewNotFound
}

// Carousel is a titled row of movies on the home view.
type Carousel struct {
	Title  string
	IsList bool
	Items  []CarouselItem
}

// CarouselItem is a movie as shown inside a [Carousel].
type CarouselItem struct {
	models.Movie
	UserMovieID string
	Action      ItemAction
}

type viewData struct {
	User      models.User
	LoggedIn  bool
	Carousels []Carousel
	Movie     models.Movie
}

// Renderer renders views from the embedded templates.
type Renderer struct {
	templates map[View]*template.Template
	signedIn  *routeTable
	anonymous *routeTable
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"gravatar": Gravatar,
	}

	r := &Renderer{
		templates: make(map[View]*template.Template, len(views)),
		signedIn:  newRouteTable(ServerRoutes(true)),
		anonymous: newRouteTable(ServerRoutes(false)),
	}

	for _, view := range views {
		tmpl, err := template.New(string(view)).Funcs(funcs).ParseFS(templateFS,
			"templates/layouts/app.html",
			"templates/components/*.html",
			"templates/pages/"+string(view)+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", view, err)
		}
		r.templates[view] = tmpl
	}

	return r, nil
}

// Match returns the view path resolves to and its URL parameters.
func (r *Renderer) Match(logged bool, path string) (View, map[string]string) {
	if logged {
		return r.signedIn.match(path)
	}
	return r.anonymous.match(path)
}

// Render renders the view matched by path for state.
//
// A player path whose movie is not in the state renders [ViewNotFound].
func (r *Renderer) Render(state models.PreloadedState, path string) (Page, error) {
	logged := state.LoggedIn()
	view, params := r.Match(logged, path)

	data := viewData{
		User:     state.User,
		LoggedIn: logged,
	}

	switch view {
	case ViewHome:
		data.Carousels = carousels(state)
	case ViewPlayer:
		movie, ok := state.FindMovie(params["id"])
		if !ok {
			view = ViewNotFound
			break
		}
		data.Movie = movie
	}

	var buf bytes.Buffer
	if err := r.templates[view].ExecuteTemplate(&buf, "app", data); err != nil {
		return Page{}, fmt.Errorf("%w: %s: %v", shared.ErrRender, view, err)
	}

	return Page{Markup: buf.String(), View: view}, nil
}

// carousels builds the home rows. "Mi lista" is left out while the list is empty.
func carousels(state models.PreloadedState) []Carousel {
	var rows []Carousel

	if len(state.MyList) > 0 {
		items := make([]CarouselItem, 0, len(state.MyList))
		for _, entry := range state.MyList {
			items = append(items, CarouselItem{Movie: entry.Movie, UserMovieID: entry.UserMovieID, Action: ItemActionFor(true)})
		}
		rows = append(rows, Carousel{Title: "Mi lista", IsList: true, Items: items})
	}

	rows = append(rows,
		Carousel{Title: "Tendencias", Items: catalogItems(state.Trends)},
		Carousel{Title: "Originales de Platfix", Items: catalogItems(state.Originals)},
	)
	return rows
}

func catalogItems(movies []models.Movie) []CarouselItem {
	items := make([]CarouselItem, 0, len(movies))
	for _, movie := range movies {
		items = append(items, CarouselItem{Movie: movie, Action: ItemActionFor(false)})
	}
	return items
}
