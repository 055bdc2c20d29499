package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"docinherit/internal/extractor"
	"docinherit/internal/graph"
	"docinherit/internal/inherit"
)

// MarkdownGenerator produces documentation in Markdown format from the
// docstring side table, one page per module.
type MarkdownGenerator struct {
	mermaid *MermaidGenerator
}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{mermaid: &MermaidGenerator{}}
}

// GenerateDocs writes a page per module with classes or functions, and an
// index page linking them. It returns the written paths.
func (g *MarkdownGenerator) GenerateDocs(ctx context.Context, gr *graph.Graph, table *inherit.Table, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	modules := append([]*extractor.Module(nil), gr.Modules...)
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })

	var written []string
	var index strings.Builder
	index.WriteString("# API Reference\n\n")
	for _, m := range modules {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if len(m.Classes) == 0 && len(m.Functions) == 0 {
			continue
		}

		name := m.Name + ".md"
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(g.RenderModule(gr, m, table)), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		index.WriteString(fmt.Sprintf("- [`%s`](%s)\n", m.Name, name))
	}

	path := filepath.Join(outputDir, "index.md")
	if err := os.WriteFile(path, []byte(index.String()), 0644); err != nil {
		return written, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return append(written, path), nil
}

// RenderModule renders the page of one module. Docstrings come from table;
// objects it does not know keep their source docstring.
func (g *MarkdownGenerator) RenderModule(gr *graph.Graph, m *extractor.Module, table *inherit.Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Module `%s`\n", m.Name))
	writeDoc(&sb, m.Doc, false)

	var ids []string
	for _, c := range m.Classes {
		if node, ok := gr.Nodes[c.QualName()]; ok && node.Class == c {
			ids = append(ids, c.QualName())
		}
	}

	if len(ids) > 0 {
		sb.WriteString("\n## Classes\n\n")
		sb.WriteString(g.mermaid.GenerateClassDiagram(gr, ids))
		for _, id := range ids {
			c, _ := gr.Class(id)
			g.renderClass(&sb, gr, c, table)
		}
	}

	if len(m.Functions) > 0 {
		sb.WriteString("\n## Functions\n")
		for _, fn := range m.Functions {
			qualname := m.Name + "." + fn.Name
			sb.WriteString(fmt.Sprintf("\n### `%s`\n", signatureLine(fn)))
			doc, changed := lookup(table, qualname, fn.Doc)
			writeDoc(&sb, doc, changed)
		}
	}
	return sb.String()
}

func (g *MarkdownGenerator) renderClass(sb *strings.Builder, gr *graph.Graph, c *extractor.Class, table *inherit.Table) {
	id := c.QualName()
	sb.WriteString(fmt.Sprintf("\n### class `%s`\n", c.Name))

	if bases := gr.Bases(id); len(bases) > 0 {
		names := make([]string, len(bases))
		for i, b := range bases {
			names[i] = "`" + strings.TrimPrefix(b, "?") + "`"
		}
		sb.WriteString(fmt.Sprintf("\nBases: %s\n", strings.Join(names, ", ")))
	}
	doc, changed := lookup(table, id, c.Doc)
	writeDoc(sb, doc, changed)

	seen := make(map[string]bool)
	for _, fn := range c.Methods {
		if seen[fn.Name] {
			continue
		}
		seen[fn.Name] = true
		fn = c.Method(fn.Name)
		sb.WriteString(fmt.Sprintf("\n#### `%s`\n", signatureLine(fn)))
		doc, changed := lookup(table, id+"."+fn.Name, fn.Doc)
		writeDoc(sb, doc, changed)
	}
}

func lookup(table *inherit.Table, qualname string, fallback *string) (*string, bool) {
	if table == nil {
		return fallback, false
	}
	e, ok := table.Lookup(qualname)
	if !ok {
		return fallback, false
	}
	return e.Docstring, e.Changed
}

func writeDoc(sb *strings.Builder, doc *string, inherited bool) {
	if doc == nil || strings.TrimSpace(*doc) == "" {
		return
	}
	if inherited {
		sb.WriteString("\n_Documentation completed from the base classes._\n")
	}
	sb.WriteString("\n```text\n")
	sb.WriteString(strings.Trim(*doc, "\n"))
	sb.WriteString("\n```\n")
}

// signatureLine is the Python-like header of a callable: "run(self, n, *args)".
func signatureLine(fn *extractor.Function) string {
	sig := fn.Signature
	params := append([]string(nil), sig.Args...)
	switch {
	case sig.Varargs != "":
		params = append(params, "*"+sig.Varargs)
	case len(sig.KwOnly) > 0:
		params = append(params, "*")
	}
	params = append(params, sig.KwOnly...)
	if sig.Varkw != "" {
		params = append(params, "**"+sig.Varkw)
	}

	prefix := ""
	if fn.Async {
		prefix = "async "
	}
	return fmt.Sprintf("%s%s(%s)", prefix, fn.Name, strings.Join(params, ", "))
}
