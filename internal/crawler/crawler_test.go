package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docinherit/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestCrawler_ScanProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pkg/__init__.py":         "",
		"pkg/base.py":             "class Base:\n    \"\"\"Base.\"\"\"\n",
		"pkg/child.py":            "from pkg.base import Base\n\nclass Child(Base):\n    pass\n",
		"pkg/child.pyi":           "class Child: ...\n",
		"top.py":                  "def f():\n    \"\"\"F.\"\"\"\n",
		"notes.txt":               "not python",
		".venv/lib/site.py":       "class Site: pass\n",
		"pkg/__pycache__/x.py":    "class Cached: pass\n",
		"dist/pkg-1.0/setup.py":   "class Setup: pass\n",
		"pkg.egg-info/ignored.py": "class Egg: pass\n",
	})

	ext, err := extractor.NewExtractor("python")
	require.NoError(t, err)

	t.Run("Python files in path order", func(t *testing.T) {
		var names []string
		err := NewCrawler(ext, WithWorkers(2)).ScanProject(context.Background(), root, func(m *extractor.Module) {
			names = append(names, m.Name)
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"pkg", "pkg.base", "pkg.child", "top"}, names)
	})

	t.Run("Stubs on request", func(t *testing.T) {
		var files []string
		err := NewCrawler(ext, WithStubs(true)).ScanProject(context.Background(), root, func(m *extractor.Module) {
			rel, _ := filepath.Rel(root, m.Filepath)
			files = append(files, filepath.ToSlash(rel))
		})
		require.NoError(t, err)
		assert.Contains(t, files, "pkg/child.pyi")
	})

	t.Run("Extracted content", func(t *testing.T) {
		var child *extractor.Module
		err := NewCrawler(ext).ScanProject(context.Background(), root, func(m *extractor.Module) {
			if m.Name == "pkg.child" {
				child = m
			}
		})
		require.NoError(t, err)
		require.NotNil(t, child)
		require.Len(t, child.Classes, 1)
		assert.Equal(t, "pkg.child.Child", child.Classes[0].QualName())
		assert.Equal(t, []string{"Base"}, child.Classes[0].Bases)
	})
}

func TestCrawler_MissingRoot(t *testing.T) {
	ext, err := extractor.NewExtractor("python")
	require.NoError(t, err)

	err = NewCrawler(ext).ScanProject(context.Background(), filepath.Join(t.TempDir(), "missing"), func(*extractor.Module) {})
	assert.Error(t, err)
}
