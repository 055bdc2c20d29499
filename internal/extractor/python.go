package extractor

import (
	"strings"

	"docinherit/internal/docstring"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtensions are the extensions of Python sources and stubs.
var PythonExtensions = []string{".py", ".pyi"}

// PythonExtractor extracts modules, top-level classes with their methods,
// and top-level functions from Python source.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) Extensions() []string {
	return append([]string(nil), PythonExtensions...)
}

func (p *PythonExtractor) ExtractModule(root *sitter.Node, src []byte, m *Module) {
	m.Doc = docstringOf(root, src)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "import_statement":
			p.extractImport(node, src, m)
			continue
		case "import_from_statement":
			p.extractImportFrom(node, src, m)
			continue
		}

		def, decorators := unwrapDecorated(node, src)
		if def == nil {
			continue
		}
		switch def.Type() {
		case "class_definition":
			if c := p.extractClass(def, src, m, decorators); c != nil {
				m.Classes = append(m.Classes, c)
			}
		case "function_definition":
			if f := p.extractFunction(def, src, decorators); f != nil {
				m.Functions = append(m.Functions, f)
			}
		}
	}
}

// extractImport records "import a.b" as a -> a and "import a.b as c" as
// c -> a.b.
func (p *PythonExtractor) extractImport(node *sitter.Node, src []byte, m *Module) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			name := child.Content(src)
			head, _, _ := strings.Cut(name, ".")
			m.Imports[head] = head
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name != nil && alias != nil {
				m.Imports[alias.Content(src)] = name.Content(src)
			}
		}
	}
}

// extractImportFrom records "from a import b as c" as c -> a.b, resolving
// relative module names against the module's package.
func (p *PythonExtractor) extractImportFrom(node *sitter.Node, src []byte, m *Module) {
	if node.NamedChildCount() == 0 {
		return
	}
	from := node.NamedChild(0)
	var module string
	switch from.Type() {
	case "dotted_name":
		module = from.Content(src)
	case "relative_import":
		module = resolveRelative(from.Content(src), m.Package())
	default:
		return
	}

	for i := 1; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			name := child.Content(src)
			m.Imports[name] = joinDotted(module, name)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name != nil && alias != nil {
				m.Imports[alias.Content(src)] = joinDotted(module, name.Content(src))
			}
		}
	}
}

// resolveRelative turns "..mod" imported from package "a.b.c" into "a.b.mod".
func resolveRelative(rel, pkg string) string {
	dots := len(rel) - len(strings.TrimLeft(rel, "."))
	name := rel[dots:]

	parts := []string{}
	if pkg != "" {
		parts = strings.Split(pkg, ".")
	}
	if up := dots - 1; up > 0 {
		if up > len(parts) {
			up = len(parts)
		}
		parts = parts[:len(parts)-up]
	}
	return joinDotted(strings.Join(parts, "."), name)
}

func joinDotted(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "." + b
}

func (p *PythonExtractor) extractClass(node *sitter.Node, src []byte, m *Module, decorators []string) *Class {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	c := &Class{
		Name:       nameNode.Content(src),
		Module:     m.Name,
		Filepath:   m.Filepath,
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Decorators: decorators,
	}

	if args := node.ChildByFieldName("superclasses"); args != nil {
		for j := 0; j < int(args.NamedChildCount()); j++ {
			arg := args.NamedChild(j)
			switch arg.Type() {
			case "identifier", "attribute":
				c.Bases = append(c.Bases, arg.Content(src))
			case "subscript":
				if value := arg.ChildByFieldName("value"); value != nil {
					c.Bases = append(c.Bases, value.Content(src))
				}
			case "keyword_argument":
				key := arg.ChildByFieldName("name")
				value := arg.ChildByFieldName("value")
				if key != nil && value != nil && key.Content(src) == "metaclass" {
					c.Metaclass = calleeName(value, src)
				}
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return c
	}
	c.Doc = docstringOf(body, src)
	for j := 0; j < int(body.NamedChildCount()); j++ {
		def, decorators := unwrapDecorated(body.NamedChild(j), src)
		if def == nil || def.Type() != "function_definition" {
			continue
		}
		if f := p.extractFunction(def, src, decorators); f != nil {
			c.Methods = append(c.Methods, f)
		}
	}
	return c
}

func (p *PythonExtractor) extractFunction(node *sitter.Node, src []byte, decorators []string) *Function {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	f := &Function{
		Name:       nameNode.Content(src),
		StartLine:  int(node.StartPoint().Row) + 1,
		Decorators: decorators,
	}
	if node.ChildCount() > 0 && node.Child(0).Type() == "async" {
		f.Async = true
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		f.Signature = signatureOf(params, src)
		if len(f.Signature.Args) > 0 && f.Signature.Args[0] == "self" {
			f.Signature.DropSelf = true
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		f.Doc = docstringOf(body, src)
	}
	return f
}

// unwrapDecorated returns the definition inside a decorated_definition along
// with its decorator names; other nodes are returned as is.
func unwrapDecorated(node *sitter.Node, src []byte) (*sitter.Node, []string) {
	if node.Type() != "decorated_definition" {
		return node, nil
	}
	var decorators []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "decorator" || child.NamedChildCount() == 0 {
			continue
		}
		decorators = append(decorators, calleeName(child.NamedChild(0), src))
	}
	return node.ChildByFieldName("definition"), decorators
}

// calleeName is the dotted name of an expression, with a call or a
// subscript stripped: "functools.wraps" for functools.wraps(f).
func calleeName(expr *sitter.Node, src []byte) string {
	switch expr.Type() {
	case "call":
		if fn := expr.ChildByFieldName("function"); fn != nil {
			return calleeName(fn, src)
		}
	case "subscript":
		if value := expr.ChildByFieldName("value"); value != nil {
			return calleeName(value, src)
		}
	}
	return expr.Content(src)
}

func signatureOf(params *sitter.Node, src []byte) docstring.Signature {
	var sig docstring.Signature
	kwOnly := false
	add := func(name string) {
		if kwOnly {
			sig.KwOnly = append(sig.KwOnly, name)
		} else {
			sig.Args = append(sig.Args, name)
		}
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "identifier":
			add(param.Content(src))
		case "default_parameter", "typed_default_parameter":
			if name := param.ChildByFieldName("name"); name != nil {
				add(name.Content(src))
			}
		case "typed_parameter":
			if param.NamedChildCount() == 0 {
				continue
			}
			inner := param.NamedChild(0)
			switch inner.Type() {
			case "list_splat_pattern":
				sig.Varargs = strings.TrimLeft(inner.Content(src), "*")
				kwOnly = true
			case "dictionary_splat_pattern":
				sig.Varkw = strings.TrimLeft(inner.Content(src), "*")
			default:
				add(inner.Content(src))
			}
		case "list_splat_pattern":
			sig.Varargs = strings.TrimLeft(param.Content(src), "*")
			kwOnly = true
		case "dictionary_splat_pattern":
			sig.Varkw = strings.TrimLeft(param.Content(src), "*")
		case "keyword_separator":
			kwOnly = true
		}
	}
	return sig
}

// docstringOf returns the docstring of a module or block: its first
// statement when that is a plain string literal.
func docstringOf(body *sitter.Node, src []byte) *string {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
			return nil
		}
		expr := stmt.NamedChild(0)
		switch expr.Type() {
		case "string":
			if doc, ok := decodeString(expr.Content(src)); ok {
				return &doc
			}
		case "concatenated_string":
			var b strings.Builder
			for j := 0; j < int(expr.NamedChildCount()); j++ {
				part := expr.NamedChild(j)
				if part.Type() == "comment" {
					continue
				}
				doc, ok := decodeString(part.Content(src))
				if !ok {
					return nil
				}
				b.WriteString(doc)
			}
			doc := b.String()
			return &doc
		}
		return nil
	}
	return nil
}
