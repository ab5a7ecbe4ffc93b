package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/shared"
)

// Asset paths used when no manifest is available.
const (
	DefaultStylesheet = "/assets/app.css"
	DefaultScript     = "/assets/app.js"
	DefaultVendor     = "/assets/vendor.js"
)

var shellTmpl = template.Must(template.ParseFS(templateFS, "templates/layouts/shell.html"))

// Manifest maps logical asset names (main.css, main.js, vendors.js) to built paths.
type Manifest map[string]string

// Assets are the three URLs linked from every page.
type Assets struct {
	CSS    string
	JS     string
	Vendor string
}

// LoadManifest reads a JSON manifest. A missing file yields a nil Manifest and no error.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return m, nil
}

// Assets resolves the page assets. Keys missing from the manifest use the default paths.
func (m Manifest) Assets() Assets {
	return Assets{
		CSS:    m.lookup("main.css", DefaultStylesheet),
		JS:     m.lookup("main.js", DefaultScript),
		Vendor: m.lookup("vendors.js", DefaultVendor),
	}
}

func (m Manifest) lookup(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

type shellData struct {
	Assets Assets
	Markup template.HTML
	State  template.JS
}

// SerializeState encodes state for inline embedding: HTML escaping is off and every `<` is
// written as `\u003c`, so no `</script>` can close the tag early.
func SerializeState(state models.PreloadedState) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(state); err != nil {
		return "", fmt.Errorf("%w: state: %v", shared.ErrRender, err)
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "<", `\u003c`), nil
}

// BuildShell wraps markup and state into the full HTML document.
func BuildShell(markup string, state models.PreloadedState, manifest Manifest) (string, error) {
	serialized, err := SerializeState(state)
	if err != nil {
		return "", err
	}

	data := shellData{
		Assets: manifest.Assets(),
		Markup: template.HTML(markup),
		State:  template.JS(serialized),
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: shell: %v", shared.ErrRender, err)
	}
	return buf.String(), nil
}
