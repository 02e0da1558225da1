package http

import (
	"embed"
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
)

// Template names rendered by the UI controller.
const (
	templateIndex  = "index"
	templateUpdate = "update"
)

//go:embed templates/*.html
var templateFS embed.FS

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"isSelected": func(option books.SortOrder, current string) bool {
			return string(option) == current
		},
	}
}

// LoadTemplates parses the page templates. An empty dir uses the templates
// compiled into the binary; otherwise every *.html file in dir is parsed.
func LoadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs())
	if dir != "" {
		return tmpl.ParseGlob(filepath.Join(dir, "*.html"))
	}
	return tmpl.ParseFS(templateFS, "templates/*.html")
}

// pageData adds the values every page template expects: the CSRF field, the
// read-only flag, the pending flash message and the sort options.
func (controller *UIController) pageData(c *gin.Context, data gin.H) gin.H {
	data["CSRFField"] = security.CSRFTokenField(c)
	data["ReadOnly"] = c.GetBool(readonly.ContextKeyReadOnly)
	data["SortOptions"] = books.SortOptions()
	if controller.flash != nil {
		data["Flash"] = controller.flash.PopFlash(c.Request.Context())
	}
	return data
}
