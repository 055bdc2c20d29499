package main

import (
	"fmt"
	"log"
	"os"

	"docinherit/internal/generator"
	"docinherit/internal/inherit"

	"github.com/spf13/cobra"
)

var docsOut string

func init() {
	docsCmd.Flags().StringVarP(&docsOut, "out", "o", "docs", "Output directory")
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs [path]",
	Short: "Generate Markdown API pages with the inherited docstrings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := cmd.Context()
		root := projectRoot(cfg, args)

		g := buildGraph(ctx, newIndexer(cfg), root)
		runner, err := inherit.New(cfg)
		if err != nil {
			log.Fatalf("Failed to set up inheritance: %v", err)
		}
		table, err := runner.Run(g)
		if err != nil {
			log.Fatalf("Inheritance failed: %v", err)
		}

		fmt.Fprintln(os.Stderr, "📝 Generating documentation...")
		written, err := generator.NewMarkdownGenerator().GenerateDocs(ctx, g, table, docsOut)
		if err != nil {
			log.Fatalf("Failed to generate docs: %v", err)
		}
		fmt.Fprintf(os.Stderr, "✅ %d pages generated in '%s'.\n", len(written), docsOut)
	},
}
