package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	portraitWidth  = 190.0
	landscapeWidth = 277.0
	wideTable      = 6
)

// PDFExporter renders datasets into tabular PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and a single table.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	return e.RenderSections(title, []Section{{Data: data}})
}

// RenderSections writes one table per section. Wide tables switch the document to landscape.
func (e *PDFExporter) RenderSections(title string, sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	maxCols := 0
	for _, section := range sections {
		if len(section.Data.Headers) == 0 {
			return nil, fmt.Errorf("pdf section %q requires at least one header", section.Title)
		}
		maxCols = max(maxCols, len(section.Data.Headers))
	}

	orientation, width := "P", portraitWidth
	if maxCols > wideTable {
		orientation, width = "L", landscapeWidth
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	for i, section := range sections {
		if i > 0 {
			pdf.Ln(4)
		}
		if section.Title != "" {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, section.Title, "", 1, "L", false, 0, "")
		}
		writeTable(pdf, section.Data, width)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, data Dataset, width float64) {
	colWidth := width / float64(len(data.Headers))
	pdf.SetFont("Arial", "B", 9)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
