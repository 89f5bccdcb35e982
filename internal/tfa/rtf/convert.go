// Package rtf converts simplified HTML markup into RTF documents. Only the
// structure that matters for legal templates survives: paragraphs with
// alignment, bold/italic/underline, and line breaks. Everything else is
// unwrapped to its text content.
//
// Placeholder tokens are escaped like any other text, brace delimiters
// included, so the substitution step must match their escaped form.
package rtf

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// header declares the font table (serif, sans, mono), a minimal color table,
// and the generator comment shared by every produced document.
const header = `{\rtf1\ansi\ansicpg1252\deff0\deflang1033` +
	`{\fonttbl{\f0\froman\fprq2\fcharset0 Times New Roman;}` +
	`{\f1\fswiss\fprq2\fcharset0 Arial;}` +
	`{\f2\fmodern\fprq1\fcharset0 Courier New;}}` +
	`{\colortbl;\red0\green0\blue0;\red255\green0\blue0;\red0\green0\blue255;}` +
	`{\*\generator Curtis Law Firm TFA;}` +
	`\viewkind4\uc1`

// FromHTML converts an HTML fragment into a complete RTF document. The
// parser decodes entities and produces a node tree; the walk preserves
// paragraph breaks, paragraph alignment, bold, italic, underline, and line
// breaks, and recurses through any other element ignoring the tag itself.
func FromHTML(markup string) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse template markup: %w", err)
	}

	var body strings.Builder
	walk(root, &body)

	return header + body.String() + "}", nil
}

// FromText converts plain text into a complete RTF document, mapping blank
// lines to paragraph breaks. Used for templates that carry no markup but are
// requested in RTF output.
func FromText(text string) string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		"{", `\{`,
		"}", `\}`,
	).Replace(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	for strings.Contains(escaped, "\n\n\n") {
		escaped = strings.ReplaceAll(escaped, "\n\n\n", "\n\n")
	}
	escaped = strings.ReplaceAll(escaped, "\n\n", `\par\par `)
	escaped = strings.ReplaceAll(escaped, "\n", `\par `)
	escaped = strings.ReplaceAll(escaped, "\t", `\tab `)

	return header + `\pard\f0\fs24 ` + escaped + "}"
}

// walk emits the RTF for one node and its children.
func walk(n *html.Node, out *strings.Builder) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			out.WriteString(Escape(child.Data))
		case html.ElementNode:
			walkElement(child, out)
		default:
			// Comments, doctypes, and anything else carry no content.
		}
	}
}

func walkElement(n *html.Node, out *strings.Builder) {
	switch n.DataAtom {
	case atom.Style, atom.Script:
		// Stripped entirely, text content included.
	case atom.P:
		out.WriteString(`\pard` + alignmentControl(n) + `\f0\fs24 `)
		walk(n, out)
		out.WriteString(`\par `)
	case atom.Div:
		out.WriteString(`\pard\f0\fs24 `)
		walk(n, out)
		out.WriteString(`\par `)
	case atom.B, atom.Strong:
		out.WriteString(`{\b `)
		walk(n, out)
		out.WriteString("}")
	case atom.I, atom.Em:
		out.WriteString(`{\i `)
		walk(n, out)
		out.WriteString("}")
	case atom.U:
		out.WriteString(`{\ul `)
		walk(n, out)
		out.WriteString("}")
	case atom.Br:
		out.WriteString(`\line `)
	default:
		walk(n, out)
	}
}

// alignmentControl reads paragraph alignment from an inline style or the
// legacy align attribute. Left alignment is RTF's default and needs no
// control word.
func alignmentControl(n *html.Node) string {
	var style, align string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "style":
			style = strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
		case "align":
			align = strings.ToLower(strings.TrimSpace(attr.Val))
		}
	}

	switch {
	case strings.Contains(style, "text-align:center") || align == "center":
		return `\qc`
	case strings.Contains(style, "text-align:right") || align == "right":
		return `\qr`
	case strings.Contains(style, "text-align:justify") || align == "justify":
		return `\qj`
	}
	return ""
}
