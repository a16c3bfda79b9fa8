package chart

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

// PageTitle is the document title of the HTML page.
const PageTitle = "Global Land-Surface Temperature Heatmap"

type pageData struct {
	Title string
	SVG   template.HTML
	Error string
}

// WritePage writes an HTML document embedding the chart and its hover tooltip.
func WritePage(w io.Writer, c *Chart) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, c); err != nil {
		return err
	}

	// Drop the XML prolog; it has no meaning inside HTML.
	doc := buf.Bytes()
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}

	return pageTmpl.Execute(w, pageData{
		Title: PageTitle,
		SVG:   template.HTML(doc), //nolint:gosec // generated by WriteSVG, text content is escaped there
	})
}

// WriteErrorPage writes the page shown when no dataset could be loaded.
func WriteErrorPage(w io.Writer, message string) error {
	return pageTmpl.Execute(w, pageData{
		Title: PageTitle,
		Error: message,
	})
}
