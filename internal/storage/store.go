package storage

import (
	"context"

	"docinherit/internal/graph"
	"docinherit/internal/inherit"
)

// Store combines class graph and docstring table storage capabilities.
type Store interface {
	ClassGraphStore
	DocstringStore
	Close() error
}

// ClassGraphStore defines operations for persisting the inheritance graph.
type ClassGraphStore interface {
	// SaveGraph replaces the stored classes and inheritance edges with g.
	SaveGraph(ctx context.Context, g *graph.Graph) error

	// Bases returns the stored base IDs of a class, in declaration order.
	Bases(ctx context.Context, id string) ([]string, error)
}

// DocstringStore defines operations for persisting computed docstrings.
type DocstringStore interface {
	// SaveTable replaces the stored docstrings and warnings with t.
	SaveTable(ctx context.Context, t *inherit.Table) error

	// LoadTable returns the stored table.
	LoadTable(ctx context.Context) (*inherit.Table, error)

	// GetDocstring retrieves the entry of a qualified name.
	GetDocstring(ctx context.Context, qualname string) (*inherit.Entry, error)

	// FindByFile retrieves all entries defined in a file.
	FindByFile(ctx context.Context, filepath string) ([]inherit.Entry, error)
}
