package docstring

import "strings"

// Render serializes sections back to docstring text. A docstring without a
// summary starts with an empty line, since documentation tools mis-handle a
// docstring that opens directly on a section header.
func Render(d Dialect, s *Sections) string {
	if s.Empty() {
		return ""
	}

	rendered := make([]string, 0, s.Len())
	for _, name := range s.Keys() {
		v, _ := s.Get(name)
		if name == SummaryKey {
			rendered = append(rendered, v.Text)
			continue
		}
		rendered = append(rendered, d.renderSection(name, v))
	}

	out := strings.Join(rendered, "\n\n")
	if !s.Has(SummaryKey) {
		return "\n" + out
	}
	return out
}
