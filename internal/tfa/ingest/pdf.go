package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor pulls plain text out of PDF templates so their placeholder
// tokens can be scanned like any text document.
type PDFExtractor struct {
	maxFileSize int64
	maxTextSize int
}

// NewPDFExtractor creates a PDF text extractor with the specified constraints.
func NewPDFExtractor(maxFileSize int64) *PDFExtractor {
	return &PDFExtractor{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024,
	}
}

// ExtractText validates the file and extracts text from every page. Pages
// that fail extraction are skipped; a PDF yielding no text at all is an
// error, since a template without scannable text cannot carry fields.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	if err := e.validate(path); err != nil {
		return "", err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	total := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if total+len(content) > e.maxTextSize {
			remaining := e.maxTextSize - total
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}
		builder.WriteString(content)
		total += len(content)
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content could be extracted from %s", path)
	}
	return text, nil
}

// validate checks size and structure before extraction. pdfcpu's relaxed
// validation catches truncated or non-PDF files up front with a clearer
// error than a failed text pass.
func (e *PDFExtractor) validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > e.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), e.maxFileSize)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	return nil
}
