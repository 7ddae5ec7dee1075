package reporting

import (
	"bytes"
	"context"
	"errors"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

// ContentType is the MIME type of every rendered report.
const ContentType = "application/pdf"

// ErrInvalidDocument indicates a renderer produced something that is not a PDF.
var ErrInvalidDocument = errors.New("rendered document is not a pdf")

var pdfSignature = []byte("%PDF-")

// Renderer turns report content into a downloadable document.
type Renderer interface {
	Name() string
	Render(ctx context.Context, report models.Report) ([]byte, error)
}

// IsPDF reports whether b starts with the PDF file signature.
func IsPDF(b []byte) bool {
	return bytes.HasPrefix(b, pdfSignature)
}

// Header fill and striping shared by both renderers.
var (
	headerFill = rgb{0xA5, 0xD6, 0xA7}
	stripeFill = rgb{0xF1, 0xF8, 0xE9}
)

type rgb struct {
	R, G, B int
}
