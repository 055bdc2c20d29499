package analysis

import (
	"path/filepath"
	"sort"

	"docinherit/internal/git"
	"docinherit/internal/graph"
)

// ImpactReport summarizes the classes whose docstrings changes may alter.
type ImpactReport struct {
	// DirectlyAffected are the classes whose source lines changed.
	DirectlyAffected []*graph.Node
	// IndirectlyAffected are the subclasses of the directly affected
	// classes, which inherit from them.
	IndirectlyAffected []*graph.Node
}

// IDs returns the qualified names of every affected class.
func (r *ImpactReport) IDs() []string {
	ids := make([]string, 0, len(r.DirectlyAffected)+len(r.IndirectlyAffected))
	for _, n := range r.DirectlyAffected {
		ids = append(ids, n.Class.QualName())
	}
	for _, n := range r.IndirectlyAffected {
		ids = append(ids, n.Class.QualName())
	}
	return ids
}

// Analyzer performs impact analysis on the inheritance graph.
type Analyzer struct {
	g *graph.Graph
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(g *graph.Graph) *Analyzer {
	return &Analyzer{g: g}
}

// AnalyzeImpact identifies which classes are affected by the given changes.
// Change paths must name files the way the graph does.
func (a *Analyzer) AnalyzeImpact(changes []git.ChangedFile) *ImpactReport {
	report := &ImpactReport{
		DirectlyAffected:   []*graph.Node{},
		IndirectlyAffected: []*graph.Node{},
	}

	byFile := make(map[string][]int, len(changes))
	for _, change := range changes {
		path := filepath.Clean(change.Path)
		byFile[path] = append(byFile[path], change.ChangedLines...)
	}

	// 1. Find Direct Impacts
	var direct []string
	seenDirect := make(map[string]bool)
	for _, id := range sortedIDs(a.g) {
		node := a.g.Nodes[id]
		lines, ok := byFile[filepath.Clean(node.Class.Filepath)]
		if !ok || !isAffected(node, lines) {
			continue
		}
		report.DirectlyAffected = append(report.DirectlyAffected, node)
		seenDirect[id] = true
		direct = append(direct, id)
	}

	// 2. Find Indirect Impacts (Subclasses)
	for _, id := range a.g.Descendants(direct...) {
		if seenDirect[id] {
			continue
		}
		report.IndirectlyAffected = append(report.IndirectlyAffected, a.g.Nodes[id])
	}

	return report
}

func isAffected(node *graph.Node, lines []int) bool {
	// Simple overlap check
	for _, line := range lines {
		if line >= node.Class.StartLine && line <= node.Class.EndLine {
			return true
		}
	}
	return false
}

func sortedIDs(g *graph.Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
