package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSections_Order(t *testing.T) {
	var s Sections
	assert.True(t, s.Empty())
	assert.Nil(t, s.Keys())
	_, ok := s.Get("Args")
	assert.False(t, ok)

	s.Set(SummaryKey, Prose("Summary."))
	s.Set("Args", ItemValue(ItemsOf("x", ": The x.")))
	s.Set("Returns", Prose("int"))
	s.Set(SummaryKey, Prose("Other."))
	assert.Equal(t, []string{SummaryKey, "Args", "Returns"}, s.Keys())

	summary, ok := s.Summary()
	assert.True(t, ok)
	assert.Equal(t, "Other.", summary)

	s.Delete("Args")
	s.Delete("Missing")
	assert.Equal(t, []string{SummaryKey, "Returns"}, s.Keys())
	assert.Equal(t, 2, s.Len())
}

func TestSections_Clone(t *testing.T) {
	s := NewSections()
	s.Set("Args", ItemValue(ItemsOf("x", ": The x.", "y", ": The y.")))

	c := s.Clone()
	v, _ := c.Get("Args")
	v.Items.Set("z", ": The z.")
	v.Items.Delete("x")

	orig, _ := s.Get("Args")
	assert.Equal(t, []string{"x", "y"}, orig.Items.Keys())
	assert.Equal(t, []string{"y", "z"}, v.Items.Keys())
	assert.Nil(t, (*Sections)(nil).Clone().Keys())
}
