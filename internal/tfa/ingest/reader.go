// Package ingest reads template files from disk into the neutral form the
// engine works on: a plain-text body for field scanning plus, for formatted
// inputs, the original markup for RTF output.
package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Document is one ingested template file. Markup is empty for plain-text
// inputs; when present it drives RTF output, while RawText is always what
// gets scanned for placeholder tokens.
type Document struct {
	Name    string
	Path    string
	RawText string
	Markup  string
	Size    int64
}

// Reader loads template files, enforcing the configured size limit.
type Reader struct {
	maxFileSize int64
	pdf         *PDFExtractor
}

// NewReader creates a template reader with the specified constraints.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		pdf:         NewPDFExtractor(maxFileSize),
	}
}

// SupportedExtensions lists the template file types the reader accepts.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".markdown", ".html", ".htm", ".pdf"}
}

// IsSupported reports whether a filename has a readable template extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// ReadFile loads one template file. Markdown templates get a rich body by
// rendering to HTML; HTML templates keep their markup and scan the stripped
// text; PDF templates go through text extraction and yield no rich body.
func (r *Reader) ReadFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > r.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), r.maxFileSize)
	}

	doc := &Document{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		text, err := r.pdf.ExtractText(path)
		if err != nil {
			return nil, err
		}
		doc.RawText = text
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	text := string(data)

	switch ext {
	case ".txt":
		doc.RawText = text
	case ".md", ".markdown":
		doc.RawText = text
		markup, err := renderMarkdown(text)
		if err != nil {
			return nil, err
		}
		doc.Markup = markup
	case ".html", ".htm":
		doc.Markup = text
		stripped, err := StripTags(text)
		if err != nil {
			return nil, err
		}
		doc.RawText = stripped
	default:
		return nil, fmt.Errorf("unsupported template type: %s", ext)
	}

	return doc, nil
}

// renderMarkdown converts a markdown template to HTML. Placeholder tokens
// contain no markdown syntax and survive rendering as plain text.
func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// StripTags reduces HTML markup to its text content, with block elements
// separated by newlines so the scan still sees token boundaries.
func StripTags(markup string) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script") {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr":
				b.WriteString("\n")
			}
		}
	}
	visit(root)

	return b.String(), nil
}
