package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docinherit/internal/crawler"
	"docinherit/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexer_BuildGraph(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "__init__.py"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "base.py"), []byte("class Base:\n    \"\"\"Base.\"\"\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "child.py"), []byte("from .base import Base\n\n\nclass Child(Base):\n    pass\n"), 0644))

	ext, err := extractor.NewExtractor("python")
	require.NoError(t, err)
	idx := NewIndexer(crawler.NewCrawler(ext))

	g, err := idx.BuildGraph(context.Background(), root)
	require.NoError(t, err)

	t.Run("Classes and bases", func(t *testing.T) {
		assert.Len(t, g.Nodes, 2)
		assert.Equal(t, []string{"pkg.base.Base"}, g.Bases("pkg.child.Child"))
		assert.Empty(t, g.Unresolved)
	})

	t.Run("Save and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.json")
		require.NoError(t, idx.SaveModules(g, path))

		loaded, err := idx.LoadGraph(path)
		require.NoError(t, err)
		assert.Len(t, loaded.Nodes, 2)
		assert.Equal(t, g.Bases("pkg.child.Child"), loaded.Bases("pkg.child.Child"))

		c, ok := loaded.Class("pkg.base.Base")
		require.True(t, ok)
		require.NotNil(t, c.Doc)
		assert.Equal(t, "Base.", *c.Doc)
	})
}
