package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

func (e *Extractor) Language() string {
	return e.langName
}

// Extensions lists the file extensions the extractor understands.
func (e *Extractor) Extensions() []string {
	return e.langExtractor.Extensions()
}

// ExtractFromFile parses a single source file as the module called module.
func (e *Extractor) ExtractFromFile(ctx context.Context, path, module string) (*Module, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractSource(ctx, sourceCode, path, module)
}

// ExtractSource parses sourceCode. A fresh parser is used for every call, so
// extraction may run concurrently.
func (e *Extractor) ExtractSource(ctx context.Context, sourceCode []byte, path, module string) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.langExtractor.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		slog.Debug("source contains syntax errors", slog.String("file", path))
	}

	m := &Module{
		Name:      module,
		Filepath:  path,
		IsPackage: strings.HasPrefix(filepath.Base(path), "__init__."),
		Imports:   make(map[string]string),
	}
	e.langExtractor.ExtractModule(root, sourceCode, m)
	return m, nil
}

// ModuleName derives a dotted module name from a path relative to the
// project root: "pkg/sub/mod.py" is "pkg.sub.mod" and "pkg/__init__.py" is
// "pkg".
func ModuleName(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(rel, "/")
	if len(parts) > 1 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}
