package docstring

import (
	"strings"
	"unicode"
)

const tabSize = 8

// CleanDoc normalizes the indentation of a docstring the way Python's
// inspect.cleandoc does: tabs are expanded, the first line loses its leading
// whitespace, the common margin of the following lines is removed, and
// leading and trailing empty lines are dropped.
func CleanDoc(doc string) string {
	lines := strings.Split(expandTabs(doc), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := len(strings.TrimLeftFunc(line, unicode.IsSpace))
		if content == 0 {
			continue
		}
		indent := len(line) - content
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) > margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// Dedent removes the whitespace prefix common to all non-blank lines.
// Whitespace-only lines become empty, as with Python's textwrap.dedent.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	prefix := ""
	found := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = lead, true
			continue
		}
		prefix = commonPrefix(prefix, lead)
	}

	if prefix == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// Indent prefixes every line that is not whitespace-only, like Python's
// textwrap.indent with its default predicate.
func Indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

func rstrip(s string) string {
	return strings.TrimRight(s, " \t\r\f\v")
}
