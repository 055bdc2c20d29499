package storage

import (
	"context"
	"path/filepath"
	"testing"

	"docinherit/internal/docstring"
	"docinherit/internal/extractor"
	"docinherit/internal/graph"
	"docinherit/internal/inherit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testGraph(classes ...*extractor.Class) *graph.Graph {
	m := &extractor.Module{Name: "m", Filepath: "m.py", Imports: map[string]string{}}
	for _, c := range classes {
		c.Module = m.Name
		c.Filepath = m.Filepath
		m.Classes = append(m.Classes, c)
	}
	g := graph.NewGraph()
	g.AddModule(m)
	g.LinkBases()
	return g
}

func strptr(s string) *string { return &s }

func TestSQLiteStore_SaveGraph_SnapshotSync(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	g1 := testGraph(
		&extractor.Class{Name: "A", Metaclass: "GoogleDocstringInheritanceMeta"},
		&extractor.Class{Name: "B", Bases: []string{"A", "Mixin"}},
	)
	require.NoError(t, store.SaveGraph(ctx, g1))

	bases, err := store.Bases(ctx, "m.B")
	require.NoError(t, err)
	assert.Equal(t, []string{"m.A", "?Mixin"}, bases)

	// New snapshot: B is gone, C inherits from A.
	g2 := testGraph(
		&extractor.Class{Name: "A"},
		&extractor.Class{Name: "C", Bases: []string{"A"}},
	)
	require.NoError(t, store.SaveGraph(ctx, g2))

	bases, err = store.Bases(ctx, "m.B")
	require.NoError(t, err)
	assert.Empty(t, bases)

	bases, err = store.Bases(ctx, "m.C")
	require.NoError(t, err)
	assert.Equal(t, []string{"m.A"}, bases)
}

func TestSQLiteStore_SaveTable(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	table := inherit.NewTable()
	table.Add(inherit.Entry{QualName: "m.A", Kind: inherit.KindClass, File: "m.py", Line: 1, Original: strptr("A.")})
	table.Add(inherit.Entry{
		QualName:  "m.B.run",
		Kind:      inherit.KindMethod,
		File:      "m.py",
		Line:      7,
		Dialect:   "google",
		Docstring: strptr("Run.\n\nArgs:\n    n: Count."),
	})
	table.Add(inherit.Entry{QualName: "n.helper", Kind: inherit.KindFunction, File: "n.py", Line: 3, Original: strptr(""), Docstring: strptr("")})
	table.AddWarning(docstring.Warning{File: "m.py", Unit: "m.B.run", Section: "Args", Message: "The docstring for the argument 'n' is missing."})
	require.NoError(t, store.SaveTable(ctx, table))

	t.Run("LoadTable", func(t *testing.T) {
		loaded, err := store.LoadTable(ctx)
		require.NoError(t, err)
		assert.Equal(t, table.Entries, loaded.Entries)
		assert.Equal(t, table.Warnings, loaded.Warnings)
	})

	t.Run("GetDocstring", func(t *testing.T) {
		e, err := store.GetDocstring(ctx, "m.B.run")
		require.NoError(t, err)
		assert.Equal(t, inherit.KindMethod, e.Kind)
		assert.Nil(t, e.Original)
		require.NotNil(t, e.Docstring)
		assert.Equal(t, "Run.\n\nArgs:\n    n: Count.", *e.Docstring)
		assert.True(t, e.Changed)

		e, err = store.GetDocstring(ctx, "n.helper")
		require.NoError(t, err)
		require.NotNil(t, e.Docstring, "an empty docstring is not a missing one")
		assert.Empty(t, *e.Docstring)

		_, err = store.GetDocstring(ctx, "m.Nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FindByFile", func(t *testing.T) {
		entries, err := store.FindByFile(ctx, "m.py")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "m.A", entries[0].QualName)
		assert.Equal(t, "m.B.run", entries[1].QualName)
	})
}

func TestSQLiteStore_SaveTable_EmptySnapshotClearsData(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	table := inherit.NewTable()
	table.Add(inherit.Entry{QualName: "x.f", Kind: inherit.KindFunction, File: "x.py"})
	table.AddWarning(docstring.Warning{Unit: "x.f"})
	require.NoError(t, store.SaveTable(ctx, table))

	require.NoError(t, store.SaveTable(ctx, inherit.NewTable()))

	loaded, err := store.LoadTable(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Entries)
	assert.Empty(t, loaded.Warnings)
}
