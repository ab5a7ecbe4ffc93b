package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/platfix/platfix/internal/models"
)

var unicodeLT = "\\" + "u003c"

func signedInState() models.PreloadedState {
	state := models.EmptyState()
	state.User = models.User{ID: "u1", Email: "dgdband@gmail.com", Name: "Ana"}
	state.MyList = []models.MyListEntry{
		{Movie: models.Movie{ID: "m1", Title: "Alpha", Year: 2019, ContentRating: "PG", Duration: 120, Source: "https://cdn.example.com/a.mp4"}, UserMovieID: "um1"},
	}
	state.Trends = []models.Movie{{ID: "m1", Title: "Alpha", ContentRating: "PG"}, {ID: "m2", Title: "Beta", ContentRating: "PG"}}
	state.Originals = []models.Movie{{ID: "m3", Title: "Gamma", ContentRating: "G", Source: "https://cdn.example.com/g.mp4"}}
	return state
}

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse markup: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns every element matching pred in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestGravatar(t *testing.T) {
	want := "https://gravatar.com/avatar/d36785eb557425254e833b456ae10b73"

	for _, email := range []string{"dgdband@gmail.com", "  DGDBand@Gmail.com "} {
		if got := Gravatar(email); got != want {
			t.Errorf("Gravatar(%q) = %s, want %s", email, got, want)
		}
	}
}

func TestItemActionFor(t *testing.T) {
	if got := ItemActionFor(true); got != ActionRemove || got.Label != "Quitar de mi lista" {
		t.Errorf("expected remove action for list items, got %+v", got)
	}
	if got := ItemActionFor(false); got != ActionAdd {
		t.Errorf("expected add action for catalog items, got %+v", got)
	}
}

func TestServerRoutes(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	tests := []struct {
		path      string
		logged    View
		anonymous View
	}{
		{"/", ViewHome, ViewLogin},
		{"/player/m1", ViewPlayer, ViewLogin},
		{"/login", ViewLogin, ViewLogin},
		{"/register", ViewRegister, ViewRegister},
		{"/movies", ViewNotFound, ViewNotFound},
		{"/player/m1/extra", ViewNotFound, ViewNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got, _ := r.Match(true, tt.path); got != tt.logged {
				t.Errorf("logged in: got %s, want %s", got, tt.logged)
			}
			if got, _ := r.Match(false, tt.path); got != tt.anonymous {
				t.Errorf("anonymous: got %s, want %s", got, tt.anonymous)
			}
		})
	}

	t.Run("Player Param", func(t *testing.T) {
		_, params := r.Match(true, "/player/abc123")
		if params["id"] != "abc123" {
			t.Errorf("expected id param, got %v", params)
		}
	})
}

func TestRender(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	t.Run("Home", func(t *testing.T) {
		page, err := r.Render(signedInState(), "/")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if page.View != ViewHome || page.NotFound() {
			t.Fatalf("expected home view, got %s", page.View)
		}

		doc := parse(t, page.Markup)
		titles := findAll(doc, byClass("categories__title"))
		if len(titles) != 3 {
			t.Fatalf("expected 3 carousels, got %d", len(titles))
		}
		for i, want := range []string{"Mi lista", "Tendencias", "Originales de Platfix"} {
			if got := text(titles[i]); got != want {
				t.Errorf("carousel %d: got %q, want %q", i, got, want)
			}
		}

		actions := findAll(doc, func(n *html.Node) bool { return attr(n, "data-action") != "" })
		if len(actions) != 4 {
			t.Fatalf("expected 4 item actions, got %d", len(actions))
		}
		if attr(actions[0], "data-action") != "remove" || attr(actions[0], "data-user-movie-id") != "um1" {
			t.Errorf("expected list item to carry remove action, got %v", actions[0].Attr)
		}
		if attr(actions[0], "alt") != "Quitar de mi lista" {
			t.Errorf("unexpected remove label %q", attr(actions[0], "alt"))
		}
		for _, a := range actions[1:] {
			if attr(a, "data-action") != "add" {
				t.Errorf("expected add action, got %v", a.Attr)
			}
		}

		subtitles := findAll(doc, byClass("carousel-item__details--subtitle"))
		if got := text(subtitles[0]); got != "2019 PG 120" {
			t.Errorf("unexpected subtitle %q", got)
		}

		avatars := findAll(doc, func(n *html.Node) bool { return strings.HasPrefix(attr(n, "src"), "https://gravatar.com/avatar/") })
		if len(avatars) != 1 {
			t.Errorf("expected a gravatar avatar, got %d", len(avatars))
		}
	})

	t.Run("Home Without List", func(t *testing.T) {
		state := signedInState()
		state.MyList = []models.MyListEntry{}

		page, err := r.Render(state, "/")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		titles := findAll(parse(t, page.Markup), byClass("categories__title"))
		if len(titles) != 2 {
			t.Errorf("expected 2 carousels, got %d", len(titles))
		}
	})

	t.Run("Anonymous Home Is Login", func(t *testing.T) {
		page, err := r.Render(models.EmptyState(), "/")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if page.View != ViewLogin {
			t.Fatalf("expected login view, got %s", page.View)
		}
		doc := parse(t, page.Markup)
		if forms := findAll(doc, byTag("form")); len(forms) != 1 || attr(forms[0], "action") != "/auth/sign-in" {
			t.Errorf("expected sign-in form")
		}
		if imgs := findAll(doc, func(n *html.Node) bool { return attr(n, "src") == "/assets/static/user-icon.png" }); len(imgs) != 1 {
			t.Errorf("expected default avatar")
		}
	})

	t.Run("Player", func(t *testing.T) {
		page, err := r.Render(signedInState(), "/player/m3")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if page.View != ViewPlayer {
			t.Fatalf("expected player view, got %s", page.View)
		}
		sources := findAll(parse(t, page.Markup), byTag("source"))
		if len(sources) != 1 || attr(sources[0], "src") != "https://cdn.example.com/g.mp4" {
			t.Errorf("expected video source for m3")
		}
	})

	t.Run("Player Unknown Movie", func(t *testing.T) {
		page, err := r.Render(signedInState(), "/player/nope")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !page.NotFound() {
			t.Errorf("expected not found, got %s", page.View)
		}
	})

	t.Run("Does Not Mutate State", func(t *testing.T) {
		state := signedInState()
		before, _ := SerializeState(state)
		if _, err := r.Render(state, "/player/m1"); err != nil {
			t.Fatalf("Render: %v", err)
		}
		after, _ := SerializeState(state)
		if before != after {
			t.Error("expected state to be unchanged")
		}
	})

	t.Run("Escapes Movie Fields", func(t *testing.T) {
		state := signedInState()
		state.Trends = []models.Movie{{ID: "x", Title: "<script>alert(1)</script>", ContentRating: "PG"}}

		page, err := r.Render(state, "/")
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if strings.Contains(page.Markup, "<script>alert(1)</script>") {
			t.Error("expected title to be escaped")
		}
	})
}

func TestManifest(t *testing.T) {
	t.Run("Nil Uses Defaults", func(t *testing.T) {
		var m Manifest
		want := Assets{CSS: "/assets/app.css", JS: "/assets/app.js", Vendor: "/assets/vendor.js"}
		if got := m.Assets(); got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("Load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		content := `{"main.css":"/main-abc.css","main.js":"/main-abc.js","vendors.js":"/vendors-abc.js"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("LoadManifest: %v", err)
		}
		want := Assets{CSS: "/main-abc.css", JS: "/main-abc.js", Vendor: "/vendors-abc.js"}
		if got := m.Assets(); got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		m, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
		if err != nil || m != nil {
			t.Errorf("expected nil manifest without error, got %v, %v", m, err)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		os.WriteFile(path, []byte("{"), 0644)

		if _, err := LoadManifest(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestBuildShell(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		out, err := BuildShell(`<p class="marker">hola</p>`, models.EmptyState(), nil)
		if err != nil {
			t.Fatalf("BuildShell: %v", err)
		}

		doc := parse(t, out)
		htmlEl := findAll(doc, byTag("html"))
		if len(htmlEl) != 1 || attr(htmlEl[0], "lang") != "es" {
			t.Error("expected lang=es")
		}
		if titles := findAll(doc, byTag("title")); len(titles) != 1 || text(titles[0]) != "Platfix" {
			t.Error("expected Platfix title")
		}

		app := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == "app" })
		if len(app) != 1 || len(findAll(app[0], byClass("marker"))) != 1 {
			t.Error("expected markup inside #app")
		}

		links := findAll(doc, byTag("link"))
		if len(links) != 1 || attr(links[0], "href") != DefaultStylesheet {
			t.Error("expected default stylesheet")
		}

		var srcs []string
		for _, s := range findAll(doc, byTag("script")) {
			if src := attr(s, "src"); src != "" {
				srcs = append(srcs, src)
			}
		}
		if len(srcs) != 2 || srcs[0] != DefaultScript || srcs[1] != DefaultVendor {
			t.Errorf("unexpected scripts %v", srcs)
		}

		state := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == "preloadedState" })
		if len(state) != 1 {
			t.Fatal("expected preloaded state script")
		}
		want := `window.__PRELOADED_STATE__ = {"user":{},"playing":{},"myList":[],"trends":[],"originals":[]}`
		if got := text(state[0]); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("Manifest Assets", func(t *testing.T) {
		m := Manifest{"main.css": "/main-abc.css", "main.js": "/main-abc.js", "vendors.js": "/vendors-abc.js"}
		out, err := BuildShell("", models.EmptyState(), m)
		if err != nil {
			t.Fatalf("BuildShell: %v", err)
		}
		for _, want := range []string{"/main-abc.css", "/main-abc.js", "/vendors-abc.js"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %s in shell", want)
			}
		}
	})

	t.Run("State Cannot Close Script", func(t *testing.T) {
		state := models.EmptyState()
		state.User = models.User{ID: "u1", Name: "</script><script>alert(1)</script>"}

		out, err := BuildShell("", state, nil)
		if err != nil {
			t.Fatalf("BuildShell: %v", err)
		}
		if strings.Contains(out, "</script><script>alert(1)") {
			t.Error("state closed the script tag")
		}
		if !strings.Contains(out, unicodeLT+"/script>") {
			t.Error("expected < to be written as a unicode escape")
		}
	})
}

func TestSerializeState(t *testing.T) {
	state := models.EmptyState()
	state.User = models.User{ID: "u1", Name: "Tom & Jerry <3"}

	got, err := SerializeState(state)
	if err != nil {
		t.Fatalf("SerializeState: %v", err)
	}
	if strings.Contains(got, "<") {
		t.Errorf("expected no raw <, got %s", got)
	}
	if !strings.Contains(got, "Tom & Jerry "+unicodeLT+"3") {
		t.Errorf("expected & kept and < escaped, got %s", got)
	}
}
