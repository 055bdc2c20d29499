package inherit

import (
	"fmt"
	"log/slog"
	"strings"

	"docinherit/internal/config"
	"docinherit/internal/docstring"
	"docinherit/internal/extractor"
	"docinherit/internal/graph"
)

// Runner computes the docstring side table of a class graph.
type Runner interface {
	Run(g *graph.Graph) (*Table, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns the runner configured by cfg: an Engine, or a runner that
// reports every docstring untouched when inheritance is disabled.
func New(cfg *config.Config, opts ...Option) (Runner, error) {
	if !cfg.Inheritance.Enabled {
		return noopRunner{}, nil
	}
	return NewEngine(cfg, opts...)
}

// Engine applies docstring inheritance to the classes of a graph whose
// metaclass asks for it.
type Engine struct {
	dialect     docstring.Dialect
	google      docstring.Dialect
	initInClass bool
	allClasses  bool
	threshold   float64
	warns       bool
	logger      *slog.Logger
}

func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	inh := cfg.Inheritance

	var google docstring.Dialect = docstring.Google
	if inh.ArbitrarySections {
		google = docstring.Google.WithArbitrarySections()
	}
	d, err := docstring.ByName(inh.Dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to select dialect: %w", err)
	}
	if d == docstring.Google {
		d = google
	}

	e := &Engine{
		dialect:     d,
		google:      google,
		initInClass: inh.InitInClass,
		allClasses:  inh.AllClasses,
		threshold:   inh.SimilarityRatio,
		warns:       inh.Warns,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// mode is how one class inherits: the dialect of its docstrings and whether
// the class docstring documents the constructor arguments.
type mode struct {
	dialect     docstring.Dialect
	initInClass bool
}

// modeFor interprets a metaclass name such as GoogleDocstringInheritanceMeta
// or NumpyDocstringInheritanceInitMeta.
func (e *Engine) modeFor(metaclass string) (mode, bool) {
	name := metaclass
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	stem, ok := strings.CutSuffix(name, "Meta")
	if ok {
		base, initIn := strings.CutSuffix(stem, "Init")
		if prefix, ok := strings.CutSuffix(base, "DocstringInheritance"); ok {
			switch strings.ToLower(prefix) {
			case "google":
				return mode{dialect: e.google, initInClass: initIn}, true
			case "numpy":
				return mode{dialect: docstring.Numpy, initInClass: initIn}, true
			default:
				return mode{dialect: e.dialect, initInClass: initIn || e.initInClass}, true
			}
		}
	}

	if e.allClasses {
		return mode{dialect: e.dialect, initInClass: e.initInClass}, true
	}
	return mode{}, false
}

// state tracks docstrings as classes are processed, ancestors first.
type state struct {
	docs     map[string]*string
	dialects map[string]string
}

func (e *Engine) Run(g *graph.Graph) (*Table, error) {
	table := NewTable()
	st := originals(g)

	for _, id := range g.TopoOrder() {
		node := g.Nodes[id]
		c := node.Class
		if len(c.Bases) == 0 {
			continue
		}
		m, ok := e.modeFor(g.Metaclass(id))
		if !ok {
			continue
		}
		ancestors, err := g.Ancestors(id)
		if err != nil {
			e.logger.Warn("skipping class", slog.String("class", id), slog.Any("error", err))
			continue
		}

		var sink docstring.WarningSink
		if e.warns {
			sink = table.AddWarning
		}
		in := docstring.NewInheritor(m.dialect, e.threshold, sink)

		e.inheritMethods(g, st, in, c, ancestors)
		e.inheritClass(g, st, in, c, ancestors, m)
	}

	return snapshot(g, st, table), nil
}

func (e *Engine) inheritMethods(g *graph.Graph, st *state, in *docstring.Inheritor, c *extractor.Class, ancestors []string) {
	id := c.QualName()
	for _, fn := range methods(c) {
		if fn.IsDescriptor() {
			continue
		}
		key := id + "." + fn.Name
		for _, a := range ancestors {
			owner, parent := g.ResolveMethod(a, fn.Name)
			if parent == nil {
				continue
			}
			parentDoc := st.docs[owner+"."+fn.Name]
			if parentDoc == nil {
				continue
			}
			doc, _ := in.Inherit(parentDoc, docstring.Unit{
				Name:      key,
				File:      c.Filepath,
				Doc:       st.docs[key],
				Signature: fn.Signature,
			})
			st.docs[key] = &doc
			st.dialects[key] = in.Dialect.Name()
			e.logger.Debug("inherited method docstring", slog.String("method", key), slog.String("from", owner))
			break
		}
	}
}

func (e *Engine) inheritClass(g *graph.Graph, st *state, in *docstring.Inheritor, c *extractor.Class, ancestors []string, m mode) {
	id := c.QualName()

	var sig docstring.Signature
	if m.initInClass {
		if _, init := g.ResolveMethod(id, "__init__"); init != nil {
			sig = init.Signature
		}
	}

	doc := st.docs[id]
	changed := false
	for _, a := range ancestors {
		next, ok := in.Inherit(st.docs[a], docstring.Unit{
			Name:      id,
			File:      c.Filepath,
			Doc:       doc,
			Signature: sig,
		})
		if ok {
			doc = &next
			changed = true
		}
	}
	if changed {
		st.docs[id] = doc
		st.dialects[id] = in.Dialect.Name()
	}
}

// methods returns each method name once, in order of first definition, with
// its effective definition.
func methods(c *extractor.Class) []*extractor.Function {
	seen := make(map[string]bool, len(c.Methods))
	out := make([]*extractor.Function, 0, len(c.Methods))
	for _, fn := range c.Methods {
		if seen[fn.Name] {
			continue
		}
		seen[fn.Name] = true
		out = append(out, c.Method(fn.Name))
	}
	return out
}

func originals(g *graph.Graph) *state {
	st := &state{docs: make(map[string]*string), dialects: make(map[string]string)}
	for id, node := range g.Nodes {
		st.docs[id] = node.Class.Doc
		for _, fn := range methods(node.Class) {
			st.docs[id+"."+fn.Name] = fn.Doc
		}
	}
	return st
}

// snapshot lists every documented object of the graph in module order with
// its current docstring.
func snapshot(g *graph.Graph, st *state, table *Table) *Table {
	for _, m := range g.Modules {
		for _, fn := range m.Functions {
			table.Add(Entry{
				QualName:  qualify(m.Name, fn.Name),
				Kind:      KindFunction,
				File:      m.Filepath,
				Line:      fn.StartLine,
				Original:  fn.Doc,
				Docstring: fn.Doc,
			})
		}
		for _, c := range m.Classes {
			id := c.QualName()
			if node, ok := g.Nodes[id]; !ok || node.Class != c {
				continue
			}
			table.Add(Entry{
				QualName:  id,
				Kind:      KindClass,
				File:      c.Filepath,
				Line:      c.StartLine,
				Dialect:   st.dialects[id],
				Original:  c.Doc,
				Docstring: st.docs[id],
			})
			for _, fn := range methods(c) {
				key := id + "." + fn.Name
				table.Add(Entry{
					QualName:  key,
					Kind:      KindMethod,
					File:      c.Filepath,
					Line:      fn.StartLine,
					Dialect:   st.dialects[key],
					Original:  fn.Doc,
					Docstring: st.docs[key],
				})
			}
		}
	}
	return table
}

func qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

// noopRunner reports every docstring as found in the source.
type noopRunner struct{}

func (noopRunner) Run(g *graph.Graph) (*Table, error) {
	return snapshot(g, originals(g), NewTable()), nil
}
