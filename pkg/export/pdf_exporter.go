package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const landscapeWidth = 277.0

// PDFExporter renders datasets into a landscape tabular PDF.
type PDFExporter struct {
	// Widths optionally weights columns by header; missing headers weigh 1.
	Widths map[string]float64
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with a title, an optional subtitle line and the table body.
func (e *PDFExporter) Render(data Dataset, title, subtitle string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := e.columnWidths(data.Headers)
	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, tr(title), "", 1, "C", false, 0, "")
	}
	if subtitle != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, tr(subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
	header()

	for _, row := range data.Rows {
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 6, tr(truncate(pdf, row[h], widths[i]-2)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) columnWidths(headers []string) []float64 {
	weights := make([]float64, len(headers))
	total := 0.0
	for i, h := range headers {
		w := 1.0
		if custom, ok := e.Widths[h]; ok && custom > 0 {
			w = custom
		}
		weights[i] = w
		total += w
	}
	for i := range weights {
		weights[i] = landscapeWidth * weights[i] / total
	}
	return weights
}

func truncate(pdf *gofpdf.Fpdf, value string, width float64) string {
	if width <= 0 || pdf.GetStringWidth(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
