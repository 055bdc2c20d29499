package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"docinherit/internal/config"
	"docinherit/internal/crawler"
	"docinherit/internal/extractor"
	"docinherit/internal/graph"
	"docinherit/internal/index"
	"docinherit/internal/inherit"
	"docinherit/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "docinherit",
		Short: "Docstring inheritance for Python class hierarchies",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	dbPath     string
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the docstring database (SQLite), defaults to storage.db of the config")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "docinherit.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")

	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "modules.json", "Where to write the extracted modules")
	showCmd.Flags().BoolVar(&showOriginal, "original", false, "Print the docstring as found in the source")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(inheritCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(showCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Storage.DB = dbPath
	}
	return cfg
}

// initStore initializes the SQLite store.
func initStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(cfg.Storage.DB)
}

// projectRoot resolves the directory to scan: the argument when given, the
// configured root otherwise. Symlinks are resolved so paths compare with the
// ones git reports.
func projectRoot(cfg *config.Config, args []string) string {
	root := cfg.Project.Root
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs
}

func newIndexer(cfg *config.Config) *index.Indexer {
	ext, err := extractor.NewExtractor("python")
	if err != nil {
		log.Fatalf("Failed to create extractor: %v", err)
	}
	cr := crawler.NewCrawler(ext,
		crawler.WithStubs(cfg.Project.IncludeStubs),
		crawler.WithWorkers(cfg.Project.Workers),
	)
	return index.NewIndexer(cr)
}

func buildGraph(ctx context.Context, idx *index.Indexer, root string) *graph.Graph {
	fmt.Fprintf(os.Stderr, "📂 Scanning directory: %s\n", root)
	start := time.Now()
	g, err := idx.BuildGraph(ctx, root)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "✅ Graph built in %v. Found %d classes in %d modules.\n", time.Since(start), len(g.Nodes), len(g.Modules))
	if n := len(g.Unresolved); n > 0 {
		counts := g.UnresolvedReasonCounts()
		fmt.Fprintf(os.Stderr, "  -> %d bases outside the project (%d not found, %d ambiguous)\n",
			n, counts[graph.ReasonNoCandidate], counts[graph.ReasonAmbiguous])
	}
	return g
}

var (
	scanOut      string
	showOriginal bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Extract the classes of a project into a module index file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := projectRoot(cfg, args)

		idx := newIndexer(cfg)
		g := buildGraph(cmd.Context(), idx, root)
		if err := idx.SaveModules(g, scanOut); err != nil {
			log.Fatalf("Failed to save modules: %v", err)
		}
		fmt.Fprintf(os.Stderr, "🎉 Scan complete! Index: %s\n", scanOut)
	},
}

var showCmd = &cobra.Command{
	Use:   "show QUALNAME",
	Short: "Print a docstring saved by 'inherit --save'",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := cmd.Context()

		store, err := initStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer store.Close()

		e, err := store.GetDocstring(ctx, args[0])
		if errors.Is(err, storage.ErrNotFound) {
			log.Fatalf("No docstring stored for %s. Run 'docinherit inherit --save' first.", args[0])
		}
		if err != nil {
			log.Fatalf("Failed to read docstring: %v", err)
		}

		fmt.Printf("# %s (%s, %s:%d)\n", e.QualName, e.Kind, e.File, e.Line)
		if e.Kind == inherit.KindClass {
			bases, err := store.Bases(ctx, e.QualName)
			if err != nil {
				log.Fatalf("Failed to read bases: %v", err)
			}
			if len(bases) > 0 {
				fmt.Printf("# bases: %v\n", bases)
			}
		}

		doc := e.Docstring
		if showOriginal {
			doc = e.Original
		}
		if doc == nil {
			fmt.Println("# no docstring")
			return
		}
		fmt.Println(*doc)
	},
}
