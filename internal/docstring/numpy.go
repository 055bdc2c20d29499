package docstring

import (
	"strings"
	"unicode/utf8"
)

var numpyItemSections = []string{"Parameters", "Other Parameters", "Attributes", "Methods"}

// NumpyDialect parses and renders NumPy style docstrings, where a section
// header is a name underlined with dashes or equal signs:
//
//	Parameters
//	----------
//	x : int
//	    The x value.
type NumpyDialect struct{}

// Name returns "numpy".
func (n *NumpyDialect) Name() string { return "numpy" }

// SectionNames returns the canonical section order.
func (n *NumpyDialect) SectionNames() []string {
	return append([]string(nil), baseSectionNames...)
}

// ArgsSection returns "Parameters".
func (n *NumpyDialect) ArgsSection() string { return "Parameters" }

// HasItems reports whether section holds name/description items.
func (n *NumpyDialect) HasItems(section string) bool {
	return contains(numpyItemSections, section)
}

// MissingArgText returns the placeholder description of an undocumented argument.
func (n *NumpyDialect) MissingArgText() string {
	return "\n    " + MissingArgDescription
}

// parseHeader recognizes a name line1 underlined by line2, made of at least
// three '-' or '=' and not shorter than the name.
func (n *NumpyDialect) parseHeader(line1, line2 string, body *[]string) (string, string, bool) {
	if utf8.RuneCountInString(line2) < 3 || !isUnderline(line2) {
		return "", "", false
	}

	name := rstrip(line1)
	if name == "" || strings.HasPrefix(name, " ") {
		return "", "", false
	}
	width := utf8.RuneCountInString(name)
	if !strings.HasPrefix(line2, strings.Repeat("-", width)) && !strings.HasPrefix(line2, strings.Repeat("=", width)) {
		return "", "", false
	}
	return name, n.body(*body), true
}

func (n *NumpyDialect) body(reversed []string) string {
	return sectionBody(reversed)
}

func (n *NumpyDialect) renderSection(name string, v Value) string {
	body := v.Text
	if v.IsItems() {
		body = joinItems(v.Items)
	}
	return name + "\n" + strings.Repeat("-", utf8.RuneCountInString(name)) + "\n" + body
}

func isUnderline(line string) bool {
	c := line[0]
	if c != '-' && c != '=' {
		return false
	}
	return strings.Trim(line, string(c)) == ""
}
