package docstring

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// EmitFunc receives an advisory message about the section at path.
type EmitFunc func(path []string, msg string)

// Auditor warns about child sections that are near copies of the parent's,
// which usually means an override forgot to update its documentation.
type Auditor struct {
	// Threshold is the similarity ratio above which a warning is emitted.
	// Zero disables the auditor.
	Threshold float64
}

// Audit compares the sections present on both sides and calls emit for the
// ones that are too similar. Item sections are compared item by item.
func (a Auditor) Audit(d Dialect, parent, child *Sections, emit EmitFunc) {
	if a.Threshold == 0 || parent.Empty() || child.Empty() || emit == nil {
		return
	}

	for _, name := range child.Keys() {
		pv, ok := parent.Get(name)
		if !ok {
			continue
		}
		cv, _ := child.Get(name)
		if d.HasItems(name) && pv.IsItems() && cv.IsItems() {
			a.auditItems(name, pv.Items, cv.Items, emit)
			continue
		}
		a.compare(pv.Text, cv.Text, []string{sectionLabel(name)}, emit)
	}
}

func (a Auditor) auditItems(section string, parent, child *Items, emit EmitFunc) {
	for _, name := range child.Keys() {
		pdesc, ok := parent.Get(name)
		if !ok {
			continue
		}
		cdesc, _ := child.Get(name)
		a.compare(pdesc, cdesc, []string{section, name}, emit)
	}
}

func (a Auditor) compare(parentDoc, childDoc string, path []string, emit EmitFunc) {
	ratio := Similarity(parentDoc, childDoc)
	if ratio <= a.Threshold {
		return
	}
	emit(path, fmt.Sprintf(
		"the docstrings have a similarity ratio of %g, the parent doc is\n%s\nthe child doc is\n%s",
		ratio, Indent(parentDoc, "    "), Indent(childDoc, "    "),
	))
}

// Similarity returns difflib's ratio between two texts, compared rune by
// rune: 1 for identical texts, 0 for texts with nothing in common.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func sectionLabel(name string) string {
	if name == SummaryKey {
		return "Summary"
	}
	return name
}
