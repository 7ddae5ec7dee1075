package reporting

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

//go:embed templates/report.html
var templateFS embed.FS

// Converter turns an HTML document into a PDF.
type Converter interface {
	Name() string
	// Check verifies the backing tool is reachable. It runs once at startup.
	Check(ctx context.Context) error
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// HTMLRenderer renders the report as HTML and hands it to a Converter.
type HTMLRenderer struct {
	tmpl      *template.Template
	converter Converter
}

// NewHTMLRenderer parses the embedded report template.
func NewHTMLRenderer(converter Converter) (*HTMLRenderer, error) {
	if converter == nil {
		return nil, fmt.Errorf("html renderer requires a converter")
	}

	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"css": func(c rgb) template.CSS {
			return template.CSS(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
		},
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}

	return &HTMLRenderer{tmpl: tmpl, converter: converter}, nil
}

// Name identifies the renderer and its converter.
func (r *HTMLRenderer) Name() string { return "html:" + r.converter.Name() }

// Markup executes the report template. It is deterministic for a given report.
func (r *HTMLRenderer) Markup(report models.Report) ([]byte, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, struct {
		models.Report
		HeaderFill rgb
		StripeFill rgb
	}{report, headerFill, stripeFill})
	if err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render converts the markup to PDF.
func (r *HTMLRenderer) Render(ctx context.Context, report models.Report) ([]byte, error) {
	markup, err := r.Markup(report)
	if err != nil {
		return nil, err
	}

	doc, err := r.converter.Convert(ctx, markup)
	if err != nil {
		return nil, fmt.Errorf("convert html with %s: %w", r.converter.Name(), err)
	}
	if !IsPDF(doc) {
		return nil, fmt.Errorf("%s output: %w", r.converter.Name(), ErrInvalidDocument)
	}
	return doc, nil
}
