// Package format applies type-directed formatting to raw field values before
// they are substituted into a document.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/curtislaw/mcp-template-filler/internal/tfa/field"
)

// dateLayouts are the accepted input layouts for DATE fields, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// Value formats a raw value according to the field's kind. It is total: on
// any failure the raw value is returned unchanged, and an empty input always
// formats to the empty string. TEXT, SELECT, CALCULATED, and unrecognized
// kinds pass through untouched.
func Value(d field.Descriptor, raw string) string {
	if raw == "" {
		return ""
	}

	switch d.Kind {
	case field.KindDate:
		return Date(raw)
	case field.KindPhone:
		return Phone(raw)
	default:
		return raw
	}
}

// Date renders a parseable calendar date in long form, e.g. "March 4, 2024".
// Unparseable input is returned unchanged.
func Date(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return raw
}

// Phone renders a ten-digit phone number as (AAA) BBB-CCCC. Anything that
// does not reduce to exactly ten digits is returned unchanged.
func Phone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
}
