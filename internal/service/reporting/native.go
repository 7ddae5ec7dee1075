package reporting

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

const (
	pageMargin  = 20.0
	rowHeight   = 7.0
	labelShare  = 0.6
	nativeName  = "native"
	pdfCreator  = "inmilk"
	bodyFontPt  = 10.0
	tableFontPt = 9.0
)

// NativeRenderer lays the report out directly with fpdf on an A4 page.
type NativeRenderer struct{}

// NewNativeRenderer returns the built-in renderer.
func NewNativeRenderer() *NativeRenderer {
	return &NativeRenderer{}
}

// Name identifies the renderer in logs and archives.
func (r *NativeRenderer) Name() string { return nativeName }

// Render produces the PDF bytes. Output is identical for identical reports.
func (r *NativeRenderer) Render(ctx context.Context, report models.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator(pdfCreator, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentWidth, 10, tr(report.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", bodyFontPt)
	pdf.CellFormat(contentWidth, 6, tr(report.Timestamp), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawSection(pdf, tr, report.Inputs, contentWidth)
	drawSection(pdf, tr, report.Outputs, contentWidth)

	pdf.SetFont("Helvetica", "I", bodyFontPt)
	pdf.MultiCell(contentWidth, 5, tr(report.Disclaimer), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write native pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSection(pdf *fpdf.Fpdf, tr func(string) string, section models.ReportSection, width float64) {
	labelWidth := width * labelShare
	valueWidth := width - labelWidth

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 8, tr(section.Title), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", tableFontPt)
	pdf.SetFillColor(headerFill.R, headerFill.G, headerFill.B)
	pdf.CellFormat(labelWidth, rowHeight, tr(section.LabelHeader), "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueWidth, rowHeight, tr(section.ValueHeader), "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", tableFontPt)
	for i, row := range section.Rows {
		striped := i%2 == 1
		if striped {
			pdf.SetFillColor(stripeFill.R, stripeFill.G, stripeFill.B)
		}
		pdf.CellFormat(labelWidth, rowHeight, tr(row.Label), "1", 0, "L", striped, 0, "")
		pdf.CellFormat(valueWidth, rowHeight, tr(row.Value), "1", 1, "L", striped, 0, "")
	}
	pdf.Ln(5)
}
