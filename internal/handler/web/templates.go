package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"AstroChart/pkg/util"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"deg": util.FormatDegrees,
}).ParseFS(templatesFS, "templates/*.html"))

// Renderer serves the embedded page templates to echo.
type Renderer struct {
	t *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{t: templates}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
