package docstring

import (
	"fmt"
	"strings"
)

// Unit is a documented callable as seen by the inheritor: never the callable
// itself, only what is needed to rebuild its documentation.
type Unit struct {
	// Name is the qualified name, used in warnings.
	Name string
	// File is the source file, used in warnings.
	File string
	// Doc is the current docstring, nil when there is none.
	Doc *string
	// Signature drives the arguments section.
	Signature Signature
}

// Warning is an advisory message about a unit's documentation.
type Warning struct {
	File    string `json:"file" yaml:"file"`
	Unit    string `json:"unit" yaml:"unit"`
	Section string `json:"section" yaml:"section"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("File %s: Function %s: Section %s: %s", w.File, w.Unit, w.Section, w.Message)
}

// WarningSink receives warnings. It may be nil.
type WarningSink func(Warning)

// Inheritor merges a parent docstring into a unit's docstring in one dialect.
// It holds no per-call state and is safe for concurrent use.
type Inheritor struct {
	Dialect Dialect
	Auditor Auditor
	Warn    WarningSink
}

// NewInheritor returns an inheritor for d with similarity warnings above
// threshold.
func NewInheritor(d Dialect, threshold float64, warn WarningSink) *Inheritor {
	return &Inheritor{Dialect: d, Auditor: Auditor{Threshold: threshold}, Warn: warn}
}

// Inherit returns the unit's docstring after inheriting from parentDoc.
// With no parent docstring nothing is merged: the unit's own text is returned
// untouched and ok is false.
func (in *Inheritor) Inherit(parentDoc *string, unit Unit) (doc string, ok bool) {
	if parentDoc == nil {
		if unit.Doc != nil {
			return *unit.Doc, false
		}
		return "", false
	}

	var childDoc string
	if unit.Doc != nil {
		childDoc = *unit.Doc
	}

	parent := Parse(in.Dialect, *parentDoc)
	child := Parse(in.Dialect, childDoc)
	in.Auditor.Audit(in.Dialect, parent, child, func(path []string, msg string) {
		in.emit(unit, path, msg)
	})

	merged, missing := Merge(in.Dialect, parent, child, unit.Signature.ArgumentNames())
	for _, arg := range missing {
		in.emit(unit, []string{in.Dialect.ArgsSection()}, fmt.Sprintf("The docstring for the argument '%s' is missing.", arg))
	}
	return Render(in.Dialect, merged), true
}

func (in *Inheritor) emit(unit Unit, path []string, msg string) {
	if in.Warn == nil {
		return
	}
	in.Warn(Warning{
		File:    unit.File,
		Unit:    unit.Name,
		Section: strings.Join(path, "/"),
		Message: msg,
	})
}
