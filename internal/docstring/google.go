package docstring

import "strings"

var googleSectionNames = func() []string {
	names := append([]string(nil), baseSectionNames...)
	names[1] = "Args"
	return names
}()

var googleItemSections = []string{"Args", "Attributes", "Methods"}

// GoogleDialect parses and renders Google style docstrings, where a section
// header is a name followed by a colon and its body is indented below it:
//
//	Args:
//	    x: The x value.
type GoogleDialect struct {
	arbitrary bool
}

// WithArbitrarySections returns a Google dialect that opens a section for any
// "Name:" line followed by an indented line, not only recognized names.
func (g *GoogleDialect) WithArbitrarySections() *GoogleDialect {
	return &GoogleDialect{arbitrary: true}
}

// Name returns "google".
func (g *GoogleDialect) Name() string { return "google" }

// SectionNames returns the canonical section order.
func (g *GoogleDialect) SectionNames() []string {
	return append([]string(nil), googleSectionNames...)
}

// ArgsSection returns "Args".
func (g *GoogleDialect) ArgsSection() string { return "Args" }

// HasItems reports whether section holds name/description items.
func (g *GoogleDialect) HasItems(section string) bool {
	return contains(googleItemSections, section)
}

// MissingArgText returns the placeholder description of an undocumented argument.
func (g *GoogleDialect) MissingArgText() string {
	return ": " + MissingArgDescription
}

// parseHeader recognizes a header line1 that has no leading blank, ends with
// a colon, names a section, and is followed by a line indented by at least
// two blanks. That following line is the first body line.
func (g *GoogleDialect) parseHeader(line1, line2 string, body *[]string) (string, string, bool) {
	line1 = rstrip(line1)
	if strings.HasPrefix(line1, " ") || !strings.HasSuffix(line1, ":") || !strings.HasPrefix(line2, "  ") {
		return "", "", false
	}

	name := strings.TrimRight(line1, " :")
	if name == "" {
		return "", "", false
	}
	if !g.arbitrary && !contains(googleSectionNames[1:], strings.TrimSpace(line1[:len(line1)-1])) {
		return "", "", false
	}

	*body = append(*body, line2)
	return name, g.body(*body), true
}

// body dedents the section as a whole so nested indentation survives.
func (g *GoogleDialect) body(reversed []string) string {
	return Dedent(sectionBody(reversed))
}

func (g *GoogleDialect) renderSection(name string, v Value) string {
	body := v.Text
	if v.IsItems() {
		body = joinItems(v.Items)
	}
	return name + ":\n" + Indent(body, "    ")
}
