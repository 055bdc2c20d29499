package extractor

import (
	"strings"

	"docinherit/internal/docstring"

	sitter "github.com/smacker/go-tree-sitter"
)

// Module is the documentation-relevant content of one source file.
type Module struct {
	Name      string  `json:"name"`
	Filepath  string  `json:"filepath"`
	IsPackage bool    `json:"is_package,omitempty"`
	Doc       *string `json:"doc,omitempty"`
	// Imports maps a name bound by an import statement to the dotted name it
	// refers to: "np" for "import numpy as np" maps to "numpy".
	Imports   map[string]string `json:"imports,omitempty"`
	Classes   []*Class          `json:"classes"`
	Functions []*Function       `json:"functions"`
}

// Package is the package relative imports of the module start from.
func (m *Module) Package() string {
	if m.IsPackage {
		return m.Name
	}
	if i := strings.LastIndex(m.Name, "."); i >= 0 {
		return m.Name[:i]
	}
	return ""
}

// Class is a top-level class definition.
type Class struct {
	Name      string  `json:"name"`
	Module    string  `json:"module"`
	Filepath  string  `json:"filepath"`
	StartLine int     `json:"start_line"`
	EndLine   int     `json:"end_line"`
	Doc       *string `json:"doc,omitempty"`
	// Bases are the base class expressions as written, without subscripts:
	// "Base", "abc.ABC", "Generic" for Generic[T].
	Bases      []string    `json:"bases,omitempty"`
	Metaclass  string      `json:"metaclass,omitempty"`
	Decorators []string    `json:"decorators,omitempty"`
	Methods    []*Function `json:"methods,omitempty"`
}

// QualName is the class name qualified by its module.
func (c *Class) QualName() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + "." + c.Name
}

// Method returns the method called name. When a name is defined twice the
// later definition wins, as it does at runtime.
func (c *Class) Method(name string) *Function {
	for i := len(c.Methods) - 1; i >= 0; i-- {
		if c.Methods[i].Name == name {
			return c.Methods[i]
		}
	}
	return nil
}

// Function is a function or a method.
type Function struct {
	Name       string              `json:"name"`
	StartLine  int                 `json:"start_line"`
	Doc        *string             `json:"doc,omitempty"`
	Signature  docstring.Signature `json:"signature"`
	Decorators []string            `json:"decorators,omitempty"`
	Async      bool                `json:"async,omitempty"`
}

var descriptorDecorators = map[string]bool{
	"staticmethod":         true,
	"classmethod":          true,
	"property":             true,
	"cached_property":      true,
	"abstractproperty":     true,
	"abstractclassmethod":  true,
	"abstractstaticmethod": true,
	"setter":               true,
	"getter":               true,
	"deleter":              true,
}

// IsDescriptor reports whether a decorator turns the function into a
// static method, class method or property.
func (f *Function) IsDescriptor() bool {
	for _, d := range f.Decorators {
		if descriptorDecorators[lastSegment(d)] {
			return true
		}
	}
	return false
}

func lastSegment(dotted string) string {
	if i := strings.LastIndex(dotted, "."); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	Extensions() []string
	ExtractModule(root *sitter.Node, src []byte, m *Module)
}
