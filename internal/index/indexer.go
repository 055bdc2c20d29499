package index

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"docinherit/internal/crawler"
	"docinherit/internal/extractor"
	"docinherit/internal/graph"
)

// Indexer orchestrates codebase indexing and graph management.
type Indexer struct {
	crawler *crawler.Crawler
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler) *Indexer {
	return &Indexer{
		crawler: c,
	}
}

// BuildGraph scans the project root and constructs the class graph.
func (i *Indexer) BuildGraph(ctx context.Context, root string) (*graph.Graph, error) {
	g := graph.NewGraph()

	err := i.crawler.ScanProject(ctx, root, func(m *extractor.Module) {
		g.AddModule(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	// Resolve base classes after all modules are loaded
	g.LinkBases()

	return g, nil
}

// SaveModules writes the extracted modules of a graph as JSON, for
// inspection and for rebuilding the graph without a rescan.
func (i *Indexer) SaveModules(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g.Modules); err != nil {
		return fmt.Errorf("failed to encode modules: %w", err)
	}
	return nil
}

// LoadGraph rebuilds a graph from a file written by SaveModules.
func (i *Indexer) LoadGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	var modules []*extractor.Module
	if err := json.NewDecoder(f).Decode(&modules); err != nil {
		return nil, fmt.Errorf("failed to decode modules: %w", err)
	}

	g := graph.NewGraph()
	for _, m := range modules {
		g.AddModule(m)
	}
	g.LinkBases()
	return g, nil
}
