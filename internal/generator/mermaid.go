package generator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"docinherit/internal/graph"
)

var mermaidIDRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// MermaidGenerator creates diagrams from the class graph.
type MermaidGenerator struct{}

// GenerateClassDiagram draws the given classes with their direct bases.
// Bases outside the project are drawn as external classes.
func (m *MermaidGenerator) GenerateClassDiagram(g *graph.Graph, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	ids = append([]string(nil), ids...)
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("classDiagram\n")

	declared := make(map[string]bool)
	declare := func(id, label, stereotype string) {
		mid := sanitizeMermaidID(id)
		if declared[mid] {
			return
		}
		declared[mid] = true
		sb.WriteString(fmt.Sprintf("    class %s[\"%s\"]\n", mid, label))
		if stereotype != "" {
			sb.WriteString(fmt.Sprintf("    <<%s>> %s\n", stereotype, mid))
		}
	}

	var edges []string
	for _, id := range ids {
		c, ok := g.Class(id)
		if !ok {
			continue
		}
		declare(id, c.Name, "")
		for _, base := range g.Bases(id) {
			switch {
			case graph.IsExternal(base):
				declare(base, strings.TrimPrefix(base, "?"), "external")
			default:
				if bc, ok := g.Class(base); ok {
					declare(base, bc.Name, "")
				}
			}
			edges = append(edges, fmt.Sprintf("    %s <|-- %s\n", sanitizeMermaidID(base), sanitizeMermaidID(id)))
		}
	}
	for _, e := range edges {
		sb.WriteString(e)
	}

	sb.WriteString("```\n")
	return sb.String()
}

// sanitizeMermaidID maps a qualified name to a valid diagram identifier.
func sanitizeMermaidID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "node"
	}
	v = mermaidIDRe.ReplaceAllString(v, "_")
	if v[0] >= '0' && v[0] <= '9' {
		v = "n_" + v
	}
	return v
}
