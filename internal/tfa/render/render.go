// Package render substitutes formatted field values into template bodies and
// emits the filled documents as plain text, RTF, or paginated PDF.
package render

import (
	"fmt"
	"strings"

	"github.com/curtislaw/mcp-template-filler/internal/tfa/field"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/format"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/rtf"
)

// ContentKind identifies the encoding of a generated document.
type ContentKind string

const (
	ContentText ContentKind = "text"
	ContentRTF  ContentKind = "rtf"
	ContentPDF  ContentKind = "pdf"
)

// OutputMode selects the requested output encoding for a generation batch.
// ModeAuto picks RTF for templates carrying a rich body and plain text for
// the rest.
type OutputMode string

const (
	ModeAuto OutputMode = "auto"
	ModeText OutputMode = "text"
	ModeRTF  OutputMode = "rtf"
	ModePDF  OutputMode = "pdf"
)

// ParseOutputMode validates a mode string, defaulting empty to ModeAuto.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeRTF:
		return ModeRTF, nil
	case ModePDF:
		return ModePDF, nil
	}
	return "", fmt.Errorf("invalid output mode: %q (must be one of: auto, text, rtf, pdf)", s)
}

// Template is one analyzed template ready for filling. RichRTF is the
// pre-converted RTF of the template's markup, empty for plain-text inputs.
// Fields is the per-template occurrence list, not the deduplicated registry:
// substitution must touch every token this document actually contains.
type Template struct {
	Name    string
	RawText string
	RichRTF string
	Fields  []field.Descriptor
}

// Result is the outcome of filling one template. Content is empty when
// Succeeded is false, and Error is empty when it is true.
type Result struct {
	Name      string      `json:"name"`
	Content   []byte      `json:"-"`
	Kind      ContentKind `json:"kind"`
	Succeeded bool        `json:"succeeded"`
	Error     string      `json:"error,omitempty"`
}

// pdfRenderer produces PDF bytes from a filled plain-text body.
type pdfRenderer interface {
	Render(templateName, body string) ([]byte, error)
}

// Engine fills templates with values. The letterhead fields only affect PDF
// output.
type Engine struct {
	pdf pdfRenderer
}

// NewEngine creates a render engine with the given letterhead identity.
func NewEngine(firmName, firmContact string) *Engine {
	return &Engine{pdf: NewPDFRenderer(firmName, firmContact)}
}

// Fill produces one filled document. A failure is captured in the Result
// rather than returned, so one bad template never aborts the rest of a
// batch.
func (e *Engine) Fill(t Template, values field.ValueGetter, mode OutputMode) Result {
	kind := resolveKind(t, mode)
	result := Result{Name: outputName(t.Name, kind), Kind: kind}

	content, err := e.render(t, values, kind)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Content = content
	result.Succeeded = true
	return result
}

func (e *Engine) render(t Template, values field.ValueGetter, kind ContentKind) ([]byte, error) {
	switch kind {
	case ContentRTF:
		body := t.RichRTF
		if body == "" {
			body = rtf.FromText(t.RawText)
		}
		// The converter RTF-escaped the token along with the rest of the
		// text, so both the needle and the replacement value go through the
		// same escaping.
		return []byte(Substitute(body, t.Fields, values, rtf.Escape)), nil
	case ContentPDF:
		filled := Substitute(t.RawText, t.Fields, values, nil)
		return e.pdf.Render(t.Name, filled)
	default:
		return []byte(Substitute(t.RawText, t.Fields, values, nil)), nil
	}
}

// Substitute replaces every literal occurrence of each field's original
// token with its formatted value. Tokens are matched as plain strings, never
// as patterns, so characters like '|' and '.' inside a token cannot be
// misread as syntax. The optional encode hook adapts both the token and the
// formatted value to the output encoding, for bodies whose text has already
// been encoded (the RTF path escapes token braces like any other text).
func Substitute(body string, fields []field.Descriptor, values field.ValueGetter, encode func(string) string) string {
	for _, d := range fields {
		token := d.Original
		formatted := format.Value(d, values.Get(d.Key))
		if encode != nil {
			token = encode(token)
			formatted = encode(formatted)
		}
		body = strings.ReplaceAll(body, token, formatted)
	}
	return body
}

// resolveKind maps the requested mode onto a concrete encoding for one
// template.
func resolveKind(t Template, mode OutputMode) ContentKind {
	switch mode {
	case ModeText:
		return ContentText
	case ModeRTF:
		return ContentRTF
	case ModePDF:
		return ContentPDF
	default:
		if t.RichRTF != "" {
			return ContentRTF
		}
		return ContentText
	}
}

// outputName derives the filled document's name from the template name,
// marking it as filled and swapping the extension for the output encoding.
func outputName(name string, kind ContentKind) string {
	base := name
	if dot := strings.LastIndex(name, "."); dot > 0 {
		base = name[:dot]
	}
	switch kind {
	case ContentRTF:
		return base + "_filled.rtf"
	case ContentPDF:
		return base + "_filled.pdf"
	default:
		return base + "_filled.txt"
	}
}
