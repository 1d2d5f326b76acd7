package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

func parsePage() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTmpl, pageErr = template.New("page.html.tmpl").ParseFS(templateFS, "templates/*.html.tmpl")
		if pageErr != nil {
			pageErr = &TemplateError{Message: "failed to parse page templates", Cause: pageErr}
		}
	})
	return pageTmpl, pageErr
}

// RenderHTML renders doc as a standalone A4-width HTML page with the template registered
// under templateID, or the default template when the id is unknown. doc is not modified.
func RenderHTML(doc types.Resume, templateID string) (string, error) {
	tmpl, _ := Resolve(templateID)
	return renderHTML(doc, tmpl)
}

// RenderDocument renders doc with its own template id.
func RenderDocument(doc types.Resume) (string, error) {
	return RenderHTML(doc, doc.TemplateID)
}

func renderHTML(doc types.Resume, tmpl Template) (string, error) {
	page, err := parsePage()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := page.Execute(&out, buildPage(doc, tmpl)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template " + tmpl.ID,
			Cause:   err,
		}
	}
	return out.String(), nil
}
