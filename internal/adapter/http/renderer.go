package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/profile"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer executes one page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": money,
	"pct": func(d decimal.Decimal) string {
		return d.StringFixed(1) + "%"
	},
	"rate": func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	},
}

// money formats an amount as whole pesos with thousands separators.
func money(d decimal.Decimal) string {
	s := d.Round(0).Abs().String()
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if d.Round(0).IsNegative() {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func NewRenderer() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// pageData is what every template receives; the layout reads Title and Role.
type pageData struct {
	Title string
	Role  profile.Role
	Data  any
}

func render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, pageData{Title: title, Role: middleware.Role(c), Data: data})
}
