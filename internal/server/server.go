// Package server exposes the stored docstring table and the merge operation
// as MCP tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docinherit/internal/config"
	"docinherit/internal/docstring"
	"docinherit/internal/storage"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Tools holds the handlers of the registered tools.
type Tools struct {
	store storage.DocstringStore
	cfg   *config.Config
}

// New creates the MCP server with every tool registered. store may be nil,
// in which case only merge_docstrings is available.
func New(cfg *config.Config, store storage.DocstringStore) *server.MCPServer {
	s := server.NewMCPServer(
		"docinherit",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	t := &Tools{store: store, cfg: cfg}
	if store != nil {
		s.AddTool(getDocstringTool, t.GetDocstring)
		s.AddTool(fileDocstringsTool, t.FileDocstrings)
	}
	s.AddTool(mergeTool, t.Merge)
	return s
}

const instructions = `docinherit computes the docstrings Python methods and classes inherit from
their base classes. Use get_docstring with a qualified name such as
"pkg.module.Class.method" to read the completed documentation of a symbol.
Use merge_docstrings to complete a child docstring from a parent one.`

var getDocstringTool = mcp.NewTool("get_docstring",
	mcp.WithDescription("Return the inherited docstring of a class or method saved by 'docinherit inherit --save'."),
	mcp.WithString("qualname",
		mcp.Required(),
		mcp.Description("Qualified name, e.g. pkg.module.Class.method"),
	),
	mcp.WithBoolean("original",
		mcp.Description("Return the docstring as written in the source instead"),
	),
)

var fileDocstringsTool = mcp.NewTool("file_docstrings",
	mcp.WithDescription("List the symbols of a file whose docstring inheritance completed."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Absolute path of the Python file"),
	),
)

var mergeTool = mcp.NewTool("merge_docstrings",
	mcp.WithDescription("Merge a parent docstring into a child docstring."),
	mcp.WithString("parent", mcp.Description("Parent docstring")),
	mcp.WithString("child", mcp.Description("Child docstring")),
	mcp.WithString("dialect",
		mcp.Description("Docstring dialect, defaults to the configured one"),
		mcp.Enum("google", "numpy"),
	),
	mcp.WithString("args",
		mcp.Description("Comma separated positional parameters of the child"),
	),
)

// GetDocstring handles get_docstring.
func (t *Tools) GetDocstring(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("qualname")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := t.store.GetDocstring(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no docstring stored for %s", name)), nil
	}
	if err != nil {
		return nil, err
	}

	doc := e.Docstring
	if req.GetBool("original", false) {
		doc = e.Original
	}
	if doc == nil {
		return mcp.NewToolResultText(""), nil
	}
	return mcp.NewToolResultText(*doc), nil
}

// FileDocstrings handles file_docstrings.
func (t *Tools) FileDocstrings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := t.store.FindByFile(ctx, path)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, e := range entries {
		if !e.Changed {
			continue
		}
		fmt.Fprintf(&b, "%s\t%s\t%d\n", e.QualName, e.Kind, e.Line)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// Merge handles merge_docstrings.
func (t *Tools) Merge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("dialect", t.cfg.Inheritance.Dialect)
	d, err := docstring.ByName(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if d == docstring.Google && t.cfg.Inheritance.ArbitrarySections {
		d = docstring.Google.WithArbitrarySections()
	}

	var warnings []string
	var sink docstring.WarningSink
	if t.cfg.Inheritance.Warns {
		sink = func(w docstring.Warning) { warnings = append(warnings, w.String()) }
	}
	in := docstring.NewInheritor(d, t.cfg.Inheritance.SimilarityRatio, sink)

	doc, _ := in.Inherit(optional(req.GetString("parent", "")), docstring.Unit{
		Name:      "child",
		Doc:       optional(req.GetString("child", "")),
		Signature: docstring.Signature{Args: splitList(req.GetString("args", ""))},
	})

	res := mcp.NewToolResultText(doc)
	for _, w := range warnings {
		res.Content = append(res.Content, mcp.NewTextContent("warning: "+w))
	}
	return res, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
