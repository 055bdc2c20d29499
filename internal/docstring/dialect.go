package docstring

import (
	"errors"
	"fmt"
	"strings"
)

// MissingArgDescription is the fallback description of an argument that no
// docstring in the hierarchy documents.
const MissingArgDescription = "The description is missing."

// ErrUnknownDialect is returned by ByName for an unsupported dialect name.
var ErrUnknownDialect = errors.New("unknown docstring dialect")

// baseSectionNames is the canonical order shared by both dialects. The
// arguments section sits at index 1 and is renamed per dialect.
var baseSectionNames = []string{
	SummaryKey,
	"Parameters",
	"Returns",
	"Yields",
	"Receives",
	"Other Parameters",
	"Attributes",
	"Methods",
	"Raises",
	"Warns",
	"Warnings",
	"See Also",
	"Notes",
	"References",
	"Examples",
}

// Dialect describes the lexical conventions of a docstring style.
// The merge logic is shared; only detection and rendering differ.
type Dialect interface {
	// Name is the lower-case dialect name.
	Name() string
	// SectionNames is the canonical section order, summary key first.
	SectionNames() []string
	// ArgsSection is the name of the item section documenting arguments.
	ArgsSection() string
	// HasItems reports whether the named section is an item section.
	HasItems(section string) bool
	// MissingArgText is the raw item description used for undocumented
	// arguments.
	MissingArgText() string

	// parseHeader checks whether line1 followed by line2 opens a section.
	// body holds the lines after line2 in reverse order; it may be extended.
	parseHeader(line1, line2 string, body *[]string) (name, text string, ok bool)
	// body joins reversed section lines into a section body.
	body(reversed []string) string
	// renderSection renders a non-summary section.
	renderSection(name string, v Value) string
}

var (
	// Google is the Google docstring dialect. Only recognized section names
	// open a section.
	Google = &GoogleDialect{}
	// Numpy is the NumPy docstring dialect.
	Numpy = &NumpyDialect{}
)

// ByName returns the dialect called name ("google" or "numpy").
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "google":
		return Google, nil
	case "numpy":
		return Numpy, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// sectionBody joins reversed body lines in natural order, dropping the
// blank lines that ended the section.
func sectionBody(reversed []string) string {
	i := 0
	for i < len(reversed) && reversed[i] == "" {
		i++
	}
	lines := make([]string, 0, len(reversed)-i)
	for j := len(reversed) - 1; j >= i; j-- {
		lines = append(lines, reversed[j])
	}
	return strings.Join(lines, "\n")
}

func joinItems(items *Items) string {
	parts := make([]string, 0, items.Len())
	for _, name := range items.Keys() {
		desc, _ := items.Get(name)
		parts = append(parts, name+desc)
	}
	return strings.Join(parts, "\n")
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
