package docstring

import (
	"regexp"
	"strings"
)

// itemNameRe matches an item name, with the leading stars of variadic
// parameters.
var itemNameRe = regexp.MustCompile(`\**[\p{L}\p{N}_]+`)

// Parse splits a docstring into sections. Empty or blank input yields an
// empty model. Parse never fails: anything that is not a well formed header
// is body text.
func Parse(d Dialect, docstring string) *Sections {
	sections := NewSections()
	if docstring == "" {
		return sections
	}
	cleaned := CleanDoc(docstring)
	if strings.TrimSpace(cleaned) == "" {
		return sections
	}
	lines := strings.Split(cleaned, "\n")

	// Headers are easier to find walking backwards: a body is complete when
	// the pair of lines above it is a header.
	var body []string
	reversed := NewSections()
	hasSummary := true

	for i := len(lines) - 1; i >= 1; i-- {
		line2 := rstrip(lines[i])
		line1 := lines[i-1]

		name, text, ok := d.parseHeader(line1, line2, &body)
		if !ok {
			body = append(body, line2)
			continue
		}

		if d.HasItems(name) {
			reversed.Set(name, ItemValue(ParseItems(text)))
		} else {
			reversed.Set(name, Prose(text))
		}
		body = nil

		// line1 is consumed by the header.
		i--
		if i == 0 {
			hasSummary = false
			break
		}
	}

	if hasSummary {
		body = append(body, lines[0])
		sections.Set(SummaryKey, Prose(d.body(body)))
	}

	keys := reversed.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		v, _ := reversed.Get(keys[i])
		sections.Set(keys[i], v)
	}
	return sections
}

// ParseItems splits an item section body into item names and raw
// descriptions. An item starts at the first name in the body and at every
// line that starts with a name; its description runs to the next item.
func ParseItems(body string) *Items {
	items := NewItems()
	loc := itemNameRe.FindStringIndex(body)
	if loc == nil {
		return items
	}
	rest := strings.TrimSuffix(body[loc[0]:], "\n")

	var name string
	var desc []string
	flush := func() {
		if name != "" {
			items.Set(name, strings.Join(desc, "\n"))
		}
	}

	for i, line := range strings.Split(rest, "\n") {
		m := itemNameRe.FindStringIndex(line)
		if i == 0 || (m != nil && m[0] == 0) {
			flush()
			name = line[:m[1]]
			desc = []string{line[m[1]:]}
			continue
		}
		desc = append(desc, line)
	}
	flush()
	return items
}
