package field

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

// tokenPattern matches one placeholder token. The body may not contain a
// closing brace, which keeps matches non-overlapping and left-to-right.
var tokenPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Parse parses a single token, delimiters included, into a Descriptor.
//
// The token body is a pipe-separated list of one to three segments:
// CATEGORY.FIELD_NAME, an optional TYPE (default TEXT), and optional OPTIONS.
// A missing category prefix resolves to DefaultCategory. For SELECT fields
// the options segment is split on commas; for every other kind it is kept
// verbatim as a formatting hint.
func Parse(token string) (Descriptor, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(token, "{{"), "}}")
	parts := strings.Split(body, "|")

	ident := strings.TrimSpace(parts[0])
	if ident == "" {
		return Descriptor{}, fmt.Errorf("empty field identifier in token %q", token)
	}

	category := DefaultCategory
	name := ident
	if dot := strings.Index(ident, "."); dot != -1 {
		category = strings.ToUpper(strings.TrimSpace(ident[:dot]))
		name = strings.TrimSpace(ident[dot+1:])
		if category == "" || name == "" {
			return Descriptor{}, fmt.Errorf("invalid category.field identifier %q in token %q", ident, token)
		}
	}

	kind := KindText
	if len(parts) > 1 {
		if t := strings.ToUpper(strings.TrimSpace(parts[1])); t != "" {
			kind = Kind(t)
		}
	}

	d := Descriptor{
		Category: category,
		Name:     name,
		Key:      category + "." + name,
		Kind:     kind,
		Original: token,
	}

	if len(parts) > 2 {
		// Options may themselves contain pipes; everything after the
		// second separator belongs to the third segment.
		raw := strings.Join(parts[2:], "|")
		if kind == KindSelect {
			for _, opt := range strings.Split(raw, ",") {
				if opt = strings.TrimSpace(opt); opt != "" {
					d.Options = append(d.Options, opt)
				}
			}
		} else {
			d.Hint = strings.TrimSpace(raw)
		}
	}

	return d, nil
}

// Scan extracts every placeholder token from a document body, in order of
// first appearance. Duplicates are retained; deduplication is the registry's
// concern. Malformed tokens are logged and skipped without aborting the scan.
func Scan(text string) []Descriptor {
	var fields []Descriptor
	for _, token := range tokenPattern.FindAllString(text, -1) {
		d, err := Parse(token)
		if err != nil {
			log.Printf("skipping invalid field token %q: %v", token, err)
			continue
		}
		fields = append(fields, d)
	}
	return fields
}
