package analysis

import (
	"testing"

	"docinherit/internal/extractor"
	"docinherit/internal/git"
	"docinherit/internal/graph"

	"github.com/stretchr/testify/assert"
)

func class(name, file string, start, end int, bases ...string) *extractor.Class {
	return &extractor.Class{Name: name, Module: "pkg", Filepath: file, StartLine: start, EndLine: end, Bases: bases}
}

func names(nodes []*graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Class.Name)
	}
	return out
}

func TestAnalyzer_AnalyzeImpact(t *testing.T) {
	m := &extractor.Module{Name: "pkg", Filepath: "pkg/__init__.py", Imports: map[string]string{}}
	m.Classes = []*extractor.Class{
		class("Base", "pkg/__init__.py", 1, 10),
		class("Other", "pkg/__init__.py", 12, 20),
		class("Child", "pkg/__init__.py", 22, 30, "Base"),
		class("GrandChild", "pkg/__init__.py", 32, 40, "Child"),
		class("Unrelated", "pkg/__init__.py", 42, 50, "Other"),
	}
	g := graph.NewGraph()
	g.AddModule(m)
	g.LinkBases()

	a := NewAnalyzer(g)

	t.Run("Changed parent", func(t *testing.T) {
		report := a.AnalyzeImpact([]git.ChangedFile{{Path: "./pkg/__init__.py", ChangedLines: []int{5, 11}}})
		assert.Equal(t, []string{"Base"}, names(report.DirectlyAffected))
		assert.Equal(t, []string{"Child", "GrandChild"}, names(report.IndirectlyAffected))
		assert.Equal(t, []string{"pkg.Base", "pkg.Child", "pkg.GrandChild"}, report.IDs())
	})

	t.Run("Changed parent and child", func(t *testing.T) {
		report := a.AnalyzeImpact([]git.ChangedFile{{Path: "pkg/__init__.py", ChangedLines: []int{10, 22}}})
		assert.Equal(t, []string{"Base", "Child"}, names(report.DirectlyAffected))
		assert.Equal(t, []string{"GrandChild"}, names(report.IndirectlyAffected))
	})

	t.Run("Other file", func(t *testing.T) {
		report := a.AnalyzeImpact([]git.ChangedFile{{Path: "other.py", ChangedLines: []int{1}}})
		assert.Empty(t, report.DirectlyAffected)
		assert.Empty(t, report.IndirectlyAffected)
	})
}
