package main

import (
	"fmt"
	"log"
	"os"

	"docinherit/internal/docstring"

	"github.com/spf13/cobra"
)

var (
	mergeDialect string
	parentFile   string
	childFile    string
	mergeSig     docstring.Signature
)

func init() {
	mergeCmd.Flags().StringVar(&mergeDialect, "dialect", "", "Docstring dialect: google or numpy, defaults to the configured one")
	mergeCmd.Flags().StringVar(&parentFile, "parent", "", "File holding the parent docstring")
	mergeCmd.Flags().StringVar(&childFile, "child", "", "File holding the child docstring")
	mergeCmd.Flags().StringSliceVar(&mergeSig.Args, "args", nil, "Positional parameters of the child")
	mergeCmd.Flags().StringVar(&mergeSig.Varargs, "varargs", "", "Name of the *args parameter")
	mergeCmd.Flags().StringSliceVar(&mergeSig.KwOnly, "kwonly", nil, "Keyword-only parameters of the child")
	mergeCmd.Flags().StringVar(&mergeSig.Varkw, "varkw", "", "Name of the **kwargs parameter")
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a parent docstring into a child docstring",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := mergeDialect
		if name == "" {
			name = cfg.Inheritance.Dialect
		}
		d, err := docstring.ByName(name)
		if err != nil {
			log.Fatalf("Invalid dialect: %v", err)
		}
		if d == docstring.Google && cfg.Inheritance.ArbitrarySections {
			d = docstring.Google.WithArbitrarySections()
		}

		var sink docstring.WarningSink
		if cfg.Inheritance.Warns {
			sink = func(w docstring.Warning) { fmt.Fprintf(os.Stderr, "⚠️  %s\n", w) }
		}
		in := docstring.NewInheritor(d, cfg.Inheritance.SimilarityRatio, sink)

		doc, _ := in.Inherit(readDoc(parentFile), docstring.Unit{
			Name:      "child",
			File:      childFile,
			Doc:       readDoc(childFile),
			Signature: mergeSig,
		})
		fmt.Println(doc)
	},
}

// readDoc returns the content of path, nil when no path is given.
func readDoc(path string) *string {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	doc := string(data)
	return &doc
}
