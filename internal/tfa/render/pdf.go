package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Page geometry in millimeters, portrait A4.
const (
	pageLeftMargin  = 20.0
	pageRightMargin = 20.0
	pageWidth       = 210.0
	bodyWidth       = pageWidth - pageLeftMargin - pageRightMargin
	bodyTop         = 70.0
	bodyLineHeight  = 6.0
	pageBreakAt     = 260.0
)

// PDFRenderer lays substituted text out as paginated pages under a fixed
// firm letterhead, with a generation footer on every page.
type PDFRenderer struct {
	firmName    string
	firmContact string
	now         func() time.Time
}

// NewPDFRenderer creates a PDF renderer with the given letterhead identity.
func NewPDFRenderer(firmName, firmContact string) *PDFRenderer {
	return &PDFRenderer{
		firmName:    firmName,
		firmContact: firmContact,
		now:         time.Now,
	}
}

// Render produces the PDF bytes for one filled document. The output is run
// through pdfcpu's relaxed validation before being returned, so a corrupt
// document is reported as this template's failure instead of reaching the
// caller.
func (r *PDFRenderer) Render(templateName, body string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageLeftMargin, 15, pageRightMargin)
	doc.SetAutoPageBreak(false, 0)
	doc.AliasNbPages("")

	generated := r.now().Format("1/2/2006")
	doc.SetFooterFunc(func() {
		doc.SetY(-10)
		doc.SetFont("Helvetica", "I", 8)
		footer := fmt.Sprintf("Generated on %s - Page %d of {nb}", generated, doc.PageNo())
		doc.CellFormat(0, 5, footer, "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	r.letterhead(doc, templateName)

	doc.SetFont("Helvetica", "", 11)
	y := bodyTop
	for _, paragraph := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		lines := doc.SplitText(paragraph, bodyWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for _, line := range lines {
			if y > pageBreakAt {
				doc.AddPage()
				y = 20
				doc.SetFont("Helvetica", "", 11)
			}
			doc.Text(pageLeftMargin, y, line)
			y += bodyLineHeight
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(buf.Bytes()), conf); err != nil {
		return nil, fmt.Errorf("generated PDF failed validation: %w", err)
	}

	return buf.Bytes(), nil
}

// letterhead draws the firm banner, separator rule, and document title on
// the first page.
func (r *PDFRenderer) letterhead(doc *fpdf.Fpdf, templateName string) {
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 8, r.firmName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Professional Legal Services", "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, r.firmContact, "", 1, "C", false, 0, "")

	doc.Line(pageLeftMargin, 42, pageWidth-pageRightMargin, 42)

	title := templateName
	if dot := strings.LastIndex(title, "."); dot > 0 {
		title = title[:dot]
	}
	doc.SetFont("Helvetica", "B", 14)
	doc.SetXY(pageLeftMargin, 50)
	doc.CellFormat(bodyWidth, 8, title, "", 1, "C", false, 0, "")
}
