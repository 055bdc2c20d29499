package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_Sections(t *testing.T) {
	tests := []struct {
		name   string
		parent *Sections
		child  *Sections
		want   *Sections
	}{
		{"both empty", NewSections(), NewSections(), NewSections()},
		{"nil parent", nil, sectionsOf("Section", "child"), sectionsOf("Section", "child")},
		{"parent only", sectionsOf("Section", "parent"), NewSections(), sectionsOf("Section", "parent")},
		{"child only", NewSections(), sectionsOf("Section", "child"), sectionsOf("Section", "child")},
		{"child wins", sectionsOf("Section", "parent"), sectionsOf("Section", "child"), sectionsOf("Section", "child")},
		{
			"parent keys then child keys",
			sectionsOf("Section", "parent", "ParentSection", "parent"),
			sectionsOf("Section", "child", "ChildSection", "child"),
			sectionsOf("Section", "child", "ParentSection", "parent", "ChildSection", "child"),
		},
		{
			"canonical order first",
			sectionsOf("Section", "parent", "Notes", "", "Returns", ""),
			NewSections(),
			sectionsOf("Returns", "", "Notes", "", "Section", "parent"),
		},
		{
			"summary first",
			sectionsOf("Returns", ""),
			sectionsOf(SummaryKey, ""),
			sectionsOf(SummaryKey, "", "Returns", ""),
		},
		{
			"item sections are overlaid",
			sectionsOf("Methods", ItemsOf("parent_m", "", "m", "parent")),
			sectionsOf("Methods", ItemsOf("m", "child", "child_m", "")),
			sectionsOf("Methods", ItemsOf("parent_m", "", "m", "child", "child_m", "")),
		},
		{
			"items from parent only",
			sectionsOf("Methods", ItemsOf("parent_m", "")),
			NewSections(),
			sectionsOf("Methods", ItemsOf("parent_m", "")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := Merge(Numpy, tt.parent, tt.child, nil)
			assertSections(t, tt.want, got)
			assert.Empty(t, missing)
		})
	}
}

func TestMerge_Args(t *testing.T) {
	missingDesc := Numpy.MissingArgText()

	tests := []struct {
		name    string
		parent  *Sections
		child   *Sections
		args    []string
		want    *Sections
		missing []string
	}{
		{
			"no argument drops the section",
			sectionsOf("Parameters", ItemsOf("parent_a", "")),
			sectionsOf("Parameters", ItemsOf("child_a", "")),
			nil,
			NewSections(),
			nil,
		},
		{
			"undocumented argument",
			NewSections(),
			NewSections(),
			[]string{"arg"},
			sectionsOf("Parameters", ItemsOf("arg", missingDesc)),
			[]string{"arg"},
		},
		{
			"argument from parent",
			sectionsOf("Parameters", ItemsOf("arg", "parent")),
			NewSections(),
			[]string{"arg"},
			sectionsOf("Parameters", ItemsOf("arg", "parent")),
			nil,
		},
		{
			"child overrides parent",
			sectionsOf("Parameters", ItemsOf("arg", "parent")),
			sectionsOf("Parameters", ItemsOf("arg", "child")),
			[]string{"arg"},
			sectionsOf("Parameters", ItemsOf("arg", "child")),
			nil,
		},
		{
			"signature order",
			sectionsOf("Parameters", ItemsOf("b", "parent b", "a", "parent a")),
			sectionsOf("Parameters", ItemsOf("c", "child c")),
			[]string{"a", "c", "*args", "b", "**kwargs"},
			sectionsOf("Parameters", ItemsOf(
				"a", "parent a",
				"c", "child c",
				"*args", missingDesc,
				"b", "parent b",
				"**kwargs", missingDesc,
			)),
			[]string{"*args", "**kwargs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := Merge(Numpy, tt.parent, tt.child, tt.args)
			assertSections(t, tt.want, got)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

func TestMerge_GoogleArgs(t *testing.T) {
	parent := Parse(Google, "Parent.\n\nArgs:\n    a: A.\n    b: B.\n")
	child := Parse(Google, "Child.\n\nArgs:\n    c: C.\n")
	sig := Signature{Args: []string{"self", "b", "c"}, DropSelf: true}

	got, missing := Merge(Google, parent, child, sig.ArgumentNames())
	assert.Empty(t, missing)
	assertSections(t, sectionsOf(SummaryKey, "Child.", "Args", ItemsOf("b", ": B.", "c", ": C.")), got)
	assert.Equal(t, "Child.\n\nArgs:\n    b: B.\n    c: C.", Render(Google, got))
}

func TestMerge_InheritMarker(t *testing.T) {
	parent := sectionsOf(
		SummaryKey, "Parent.",
		"Methods", ItemsOf("m", ": From parent."),
		"Notes", "Parent notes.",
	)

	t.Run("prose", func(t *testing.T) {
		child := sectionsOf(SummaryKey, "Child.", "Notes", "  {inherit}\n")
		got, _ := Merge(Google, parent, child, nil)
		assertSections(t, sectionsOf(
			SummaryKey, "Child.",
			"Methods", ItemsOf("m", ": From parent."),
			"Notes", "Parent notes.",
		), got)
	})

	t.Run("item", func(t *testing.T) {
		child := sectionsOf("Methods", ItemsOf("m", ": {inherit}", "n", ": Child only."))
		got, _ := Merge(Google, parent, child, nil)
		assertSections(t, sectionsOf(
			SummaryKey, "Parent.",
			"Methods", ItemsOf("m", ": From parent.", "n", ": Child only."),
			"Notes", "Parent notes.",
		), got)
	})

	t.Run("marker without parent entry", func(t *testing.T) {
		child := sectionsOf("Attributes", ItemsOf("a", ": {inherit}"))
		got, _ := Merge(Google, parent, child, nil)
		assert.False(t, got.Has("Attributes"))
	})

	t.Run("argument", func(t *testing.T) {
		p := sectionsOf("Args", ItemsOf("x", ": The x."))
		c := sectionsOf("Args", ItemsOf("x", ": {inherit}"))
		got, missing := Merge(Google, p, c, []string{"x"})
		assert.Empty(t, missing)
		assertSections(t, sectionsOf("Args", ItemsOf("x", ": The x.")), got)
	})
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	parent := sectionsOf("Methods", ItemsOf("a", "parent"))
	child := sectionsOf("Methods", ItemsOf("b", "child"))

	got, _ := Merge(Numpy, parent, child, nil)
	v, _ := got.Get("Methods")
	v.Items.Set("c", "added")

	pv, _ := parent.Get("Methods")
	cv, _ := child.Get("Methods")
	assert.Equal(t, []string{"a"}, pv.Items.Keys())
	assert.Equal(t, []string{"b"}, cv.Items.Keys())
}

func TestMerge_Idempotent(t *testing.T) {
	doc := Parse(Google, "Summary.\n\nArgs:\n    x: The x.\n\nReturns:\n    Something.")
	got, missing := Merge(Google, doc, doc, []string{"x"})
	assert.Empty(t, missing)
	assert.Equal(t, Render(Google, doc), Render(Google, got))
}

func TestSignature_ArgumentNames(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want []string
	}{
		{"none", Signature{}, []string{}},
		{"self only", Signature{Args: []string{"self"}, DropSelf: true}, []string{}},
		{"self kept", Signature{Args: []string{"self"}}, []string{"self"}},
		{
			"all kinds",
			Signature{Args: []string{"self", "xx", "x"}, Varargs: "args", KwOnly: []string{"yy", "y"}, Varkw: "kwargs", DropSelf: true},
			[]string{"xx", "x", "*args", "yy", "y", "**kwargs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.ArgumentNames())
			assert.Equal(t, len(tt.want) == 0, tt.sig.IsEmpty())
		})
	}
}
