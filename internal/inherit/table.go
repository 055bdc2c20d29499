package inherit

import (
	"path/filepath"
	"strings"

	"docinherit/internal/docstring"
)

type Kind string

const (
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindFunction Kind = "function"
)

// Entry is the docstring of one documented object before and after
// inheritance. A nil docstring means the object has none.
type Entry struct {
	QualName  string  `json:"qualname" yaml:"qualname"`
	Kind      Kind    `json:"kind" yaml:"kind"`
	File      string  `json:"file" yaml:"file"`
	Line      int     `json:"line" yaml:"line"`
	Dialect   string  `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Original  *string `json:"original" yaml:"original"`
	Docstring *string `json:"docstring" yaml:"docstring"`
	Changed   bool    `json:"changed" yaml:"changed"`
}

// Table is the side table of computed docstrings. Source files are never
// rewritten; the table is what callers consume.
type Table struct {
	Entries  []Entry             `json:"entries" yaml:"entries"`
	Warnings []docstring.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	index map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends e, or replaces the entry with the same qualified name.
func (t *Table) Add(e Entry) {
	if t.index == nil {
		t.reindex()
	}
	e.Changed = !sameDoc(e.Original, e.Docstring)
	if i, ok := t.index[e.QualName]; ok {
		t.Entries[i] = e
		return
	}
	t.index[e.QualName] = len(t.Entries)
	t.Entries = append(t.Entries, e)
}

func (t *Table) AddWarning(w docstring.Warning) {
	t.Warnings = append(t.Warnings, w)
}

func (t *Table) Len() int {
	return len(t.Entries)
}

// Lookup returns the entry of a qualified name.
func (t *Table) Lookup(qualname string) (Entry, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[qualname]
	if !ok {
		return Entry{}, false
	}
	return t.Entries[i], true
}

// Filter returns a table with the entries keep accepts and the warnings
// about them.
func (t *Table) Filter(keep func(Entry) bool) *Table {
	out := NewTable()
	for _, e := range t.Entries {
		if keep(e) {
			out.Add(e)
		}
	}
	for _, w := range t.Warnings {
		if _, ok := out.index[w.Unit]; ok {
			out.AddWarning(w)
		}
	}
	return out
}

// ChangedOnly keeps the entries whose docstring inheritance modified.
func (t *Table) ChangedOnly() *Table {
	return t.Filter(func(e Entry) bool { return e.Changed })
}

// ForFiles keeps the entries defined in one of paths.
func (t *Table) ForFiles(paths []string) *Table {
	wanted := make(map[string]bool, len(paths))
	for _, p := range paths {
		wanted[filepath.Clean(p)] = true
	}
	return t.Filter(func(e Entry) bool { return wanted[filepath.Clean(e.File)] })
}

// ForNames keeps the entries of the given classes and of their methods.
func (t *Table) ForNames(classes []string) *Table {
	wanted := make(map[string]bool, len(classes))
	for _, c := range classes {
		wanted[c] = true
	}
	return t.Filter(func(e Entry) bool {
		if wanted[e.QualName] {
			return true
		}
		if e.Kind != KindMethod {
			return false
		}
		i := strings.LastIndex(e.QualName, ".")
		return i >= 0 && wanted[e.QualName[:i]]
	})
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Entries))
	for i, e := range t.Entries {
		t.index[e.QualName] = i
	}
}

func sameDoc(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
