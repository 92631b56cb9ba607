// Package render turns a relation report into HTML pages or terminal text
package render

import (
	"embed"
	"html/template"

	"relviz-backend/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the report page template
const PageTemplate = "report.html"

// Page is the data rendered by the report page
type Page struct {
	Input  string
	Report *service.Report
	Error  string
}

// Templates parses the embedded HTML templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
