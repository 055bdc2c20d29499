package crawler

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"docinherit/internal/extractor"

	"golang.org/x/sync/errgroup"
)

// Crawler scans a directory for source files.
type Crawler struct {
	extractor    *extractor.Extractor
	ignored      []string
	includeStubs bool
	workers      int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithStubs also scans .pyi stub files.
func WithStubs(include bool) Option {
	return func(c *Crawler) { c.includeStubs = include }
}

// WithWorkers bounds the number of files extracted at once. Zero or less
// means one worker per CPU.
func WithWorkers(n int) Option {
	return func(c *Crawler) { c.workers = n }
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor, opts ...Option) *Crawler {
	c := &Crawler{
		extractor: ext,
		ignored:   []string{".git", "venv", ".venv", "node_modules", "__pycache__", "build", "dist", ".tox", ".mypy_cache"},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers <= 0 {
		c.workers = runtime.NumCPU()
	}
	return c
}

// ScanProject walks the root directory and extracts every source file. Modules
// are passed to onModule in path order once all files are extracted. A file
// that cannot be extracted is logged and skipped.
func (c *Crawler) ScanProject(ctx context.Context, root string, onModule func(*extractor.Module)) error {
	paths, err := c.collect(root)
	if err != nil {
		return err
	}

	modules := make([]*extractor.Module, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range paths {
		g.Go(func() error {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			m, err := c.extractor.ExtractFromFile(ctx, path, extractor.ModuleName(rel))
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Log and continue instead of failing the whole scan
				slog.Warn("skipping file", slog.String("file", path), slog.Any("error", err))
				return nil
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Stream results back
	for _, m := range modules {
		if m != nil {
			onModule(m)
		}
	}
	return nil
}

func (c *Crawler) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if path != root && c.isIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if c.wants(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return strings.HasSuffix(name, ".egg-info")
}

func (c *Crawler) wants(name string) bool {
	switch filepath.Ext(name) {
	case ".py":
		return true
	case ".pyi":
		return c.includeStubs
	}
	return false
}
