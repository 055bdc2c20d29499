package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"docinherit/internal/analysis"
	"docinherit/internal/config"
	"docinherit/internal/extractor"
	"docinherit/internal/git"
	"docinherit/internal/graph"
	"docinherit/internal/inherit"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat string
	changedOnly  bool
	sinceRef     string
	indexPath    string
	saveTable    bool
)

func init() {
	inheritCmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: yaml or json")
	inheritCmd.Flags().BoolVar(&changedOnly, "changed-only", false, "Only report docstrings that inheritance modified")
	inheritCmd.Flags().StringVar(&sinceRef, "since", "", "Only report files changed since a git ref, with their subclasses")
	inheritCmd.Flags().StringVar(&indexPath, "index", "", "Read the classes from a file written by 'scan' instead of scanning")
	inheritCmd.Flags().BoolVar(&saveTable, "save", false, "Also save the graph and the docstrings to the database")
}

var inheritCmd = &cobra.Command{
	Use:   "inherit [path]",
	Short: "Compute the inherited docstrings of a project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if outputFormat != "yaml" && outputFormat != "json" {
			log.Fatalf("Unsupported format: %s", outputFormat)
		}
		cfg := loadConfig()
		ctx := cmd.Context()
		root := projectRoot(cfg, args)

		idx := newIndexer(cfg)
		var g *graph.Graph
		if indexPath != "" {
			var err error
			g, err = idx.LoadGraph(indexPath)
			if err != nil {
				log.Fatalf("Failed to load index: %v", err)
			}
		} else {
			g = buildGraph(ctx, idx, root)
		}

		runner, err := inherit.New(cfg)
		if err != nil {
			log.Fatalf("Failed to set up inheritance: %v", err)
		}
		table, err := runner.Run(g)
		if err != nil {
			log.Fatalf("Inheritance failed: %v", err)
		}
		fmt.Fprintf(os.Stderr, "🧬 %d of %d docstrings inherited.\n", table.ChangedOnly().Len(), table.Len())

		if saveTable {
			save(ctx, cfg, g, table)
		}

		if sinceRef != "" {
			table = sinceFilter(ctx, g, table, root, sinceRef)
		}
		if changedOnly {
			table = table.ChangedOnly()
		}

		if cfg.Inheritance.Warns {
			for _, w := range table.Warnings {
				fmt.Fprintf(os.Stderr, "⚠️  %s\n", w)
			}
		}

		if err := writeTable(os.Stdout, table, outputFormat); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
	},
}

func save(ctx context.Context, cfg *config.Config, g *graph.Graph, table *inherit.Table) {
	store, err := initStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	fmt.Fprintln(os.Stderr, "💾 Saving to local database...")
	if err := store.SaveGraph(ctx, g); err != nil {
		log.Fatalf("Failed to save graph: %v", err)
	}
	if err := store.SaveTable(ctx, table); err != nil {
		log.Fatalf("Failed to save docstrings: %v", err)
	}
}

// sinceFilter keeps the entries of the files changed since ref, and of every
// subclass of a class those changes touch.
func sinceFilter(ctx context.Context, g *graph.Graph, table *inherit.Table, root, ref string) *inherit.Table {
	top, err := git.TopLevel(ctx, root)
	if err != nil {
		log.Fatalf("Failed to locate the git repository: %v", err)
	}
	changes, err := git.ChangedFiles(ctx, top, ref)
	if err != nil {
		log.Fatalf("Failed to get git changes: %v", err)
	}

	paths := git.PythonPaths(changes, extractor.PythonExtensions)
	fmt.Fprintf(os.Stderr, "📝 Detected %d changed Python files since %s.\n", len(paths), ref)
	for i := range changes {
		changes[i].Path = filepath.Join(top, changes[i].Path)
	}
	for i, p := range paths {
		paths[i] = filepath.Join(top, p)
	}

	fmt.Fprintln(os.Stderr, "🔍 Analyzing impact...")
	report := analysis.NewAnalyzer(g).AnalyzeImpact(changes)
	fmt.Fprintf(os.Stderr, "  -> %d classes directly affected\n", len(report.DirectlyAffected))
	fmt.Fprintf(os.Stderr, "  -> %d classes indirectly affected (subclasses)\n", len(report.IndirectlyAffected))

	inFiles := table.ForFiles(paths)
	affected := table.ForNames(report.IDs())
	return table.Filter(func(e inherit.Entry) bool {
		if _, ok := inFiles.Lookup(e.QualName); ok {
			return true
		}
		_, ok := affected.Lookup(e.QualName)
		return ok
	})
}

func writeTable(w io.Writer, table *inherit.Table, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(table); err != nil {
		return err
	}
	return enc.Close()
}
