package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSection(t *testing.T) {
	prose := Prose("Section body.\n\n    Indented line.")
	items := ItemValue(ItemsOf("arg", ": Description."))
	numpyItems := ItemValue(ItemsOf("arg", "\n    Description."))

	assert.Equal(t, "Section name:\n    Section body.\n\n        Indented line.", Google.renderSection("Section name", prose))
	assert.Equal(t, "Args:\n    arg: Description.", Google.renderSection("Args", items))
	assert.Equal(t, "Section name\n------------\nSection body.\n\n    Indented line.", Numpy.renderSection("Section name", prose))
	assert.Equal(t, "Parameters\n----------\narg\n    Description.", Numpy.renderSection("Parameters", numpyItems))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		d    Dialect
		s    *Sections
		want string
	}{
		{"google empty", Google, NewSections(), ""},
		{"google nil", Google, nil, ""},
		{"google summary", Google, sectionsOf(SummaryKey, "body"), "body"},
		{"google summary and section", Google, sectionsOf(SummaryKey, "body", "Notes", "body"), "body\n\nNotes:\n    body"},
		{"google section only", Google, sectionsOf("Notes", "body"), "\nNotes:\n    body"},
		{"numpy summary", Numpy, sectionsOf(SummaryKey, "body"), "body"},
		{"numpy summary and section", Numpy, sectionsOf(SummaryKey, "body", "Notes", "body"), "body\n\nNotes\n-----\nbody"},
		{"numpy section only", Numpy, sectionsOf("Notes", "body"), "\nNotes\n-----\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.d, tt.s))
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		d    Dialect
		doc  string
	}{
		{"numpy block", Numpy, "\nName\n----\nBody line."},
		{"numpy full", Numpy, "Summary.\n\nParameters\n----------\nx : int\n    The x.\n\nReturns\n-------\nint\n    The result."},
		{"google full", Google, "Summary.\n\nArgs:\n    x: The x.\n    y: The y.\n\nReturns:\n    The result.\n\n    More."},
		{"google nested indent", Google, "Summary.\n\nExamples:\n    >>> f(\n    ...     1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Parse(tt.d, tt.doc)
			rendered := Render(tt.d, parsed)
			assert.Equal(t, tt.doc, rendered)
			assertSections(t, parsed, Parse(tt.d, rendered))
		})
	}
}
