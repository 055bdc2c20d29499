package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"docinherit/internal/extractor"
)

// ErrInconsistentMRO is returned when no C3 linearization of a class
// hierarchy exists, a cycle included.
var ErrInconsistentMRO = errors.New("cannot create a consistent method resolution order")

// Node represents a class in the inheritance graph.
type Node struct {
	Class  *extractor.Class
	Module *extractor.Module
}

// Edge represents a directed relationship between two nodes.
type Edge struct {
	From string       // Subclass ID
	To   string       // Base class ID
	Kind RelationKind // Relationship type
}

// Graph manages the classes of a project and their base classes. Node IDs
// are qualified class names.
type Graph struct {
	Nodes      map[string]*Node
	Edges      []Edge
	Unresolved []Unresolved
	Modules    []*extractor.Module

	// Index for faster lookup: Name -> []ID
	// Useful for resolving base class names to actual IDs.
	nameIndex map[string][]string
	modules   map[string]*extractor.Module
	// bases holds the resolved bases of each class in declaration order,
	// external ones included.
	bases map[string][]string
	mro   map[string][]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:     make(map[string]*Node),
		Edges:     []Edge{},
		nameIndex: make(map[string][]string),
		modules:   make(map[string]*extractor.Module),
		bases:     make(map[string][]string),
		mro:       make(map[string][]string),
	}
}

// AddModule adds a module and indexes its classes.
func (g *Graph) AddModule(m *extractor.Module) {
	if m == nil {
		return
	}
	g.Modules = append(g.Modules, m)
	g.modules[m.Name] = m
	for _, c := range m.Classes {
		g.addClass(m, c)
	}
}

func (g *Graph) addClass(m *extractor.Module, c *extractor.Class) {
	id := c.QualName()
	_, seen := g.Nodes[id]
	// A class defined twice in a module is rebound: the later one wins.
	g.Nodes[id] = &Node{Class: c, Module: m}
	if seen {
		return
	}
	g.nameIndex[c.Name] = append(g.nameIndex[c.Name], id)
}

// Class returns the class with the given ID.
func (g *Graph) Class(id string) (*extractor.Class, bool) {
	node, ok := g.Nodes[id]
	if !ok {
		return nil, false
	}
	return node.Class, true
}

// LinkBases resolves the base class expressions of every class. It must be
// called after all modules are added.
func (g *Graph) LinkBases() {
	g.Edges = []Edge{} // Reset edges
	g.Unresolved = nil
	g.bases = make(map[string][]string)
	g.mro = make(map[string][]string)

	for _, id := range g.sortedIDs() {
		node := g.Nodes[id]
		for _, base := range node.Class.Bases {
			if base == "object" || base == "builtins.object" {
				continue
			}
			target, reason := g.resolveBase(base, id, node.Module)
			if target == "" {
				g.Unresolved = append(g.Unresolved, Unresolved{From: id, Target: base, Reason: reason})
				target = externalPrefix + base
			} else {
				g.Edges = append(g.Edges, Edge{From: id, To: target, Kind: RelationInherits})
			}
			g.bases[id] = append(g.bases[id], target)
		}
	}
}

// resolveBase finds the class a base expression of class id refers to.
func (g *Graph) resolveBase(base, id string, m *extractor.Module) (string, UnresolvedReason) {
	// 1. Names bound by an import
	head, rest, dotted := strings.Cut(base, ".")
	if target, ok := m.Imports[head]; ok {
		if dotted {
			target += "." + rest
		}
		if found := g.followImports(target); found != "" && found != id {
			return found, ""
		}
		// Imported from outside the project.
		if _, ok := g.modules[moduleOf(target)]; !ok {
			return "", ReasonNoCandidate
		}
	}

	// 2. The same module
	if local := m.Name + "." + base; local != id {
		if _, ok := g.Nodes[local]; ok {
			return local, ""
		}
	}

	// 3. Qualified name
	if _, ok := g.Nodes[base]; ok && base != id {
		return base, ""
	}

	// 4. Unique simple name
	simple := base
	if i := strings.LastIndex(base, "."); i >= 0 {
		simple = base[i+1:]
	}
	var candidates []string
	for _, cand := range g.nameIndex[simple] {
		if cand != id {
			candidates = append(candidates, cand)
		}
	}
	switch len(candidates) {
	case 0:
		return "", ReasonNoCandidate
	case 1:
		return candidates[0], ""
	default:
		return "", ReasonAmbiguous
	}
}

// maxReexportHops bounds the chains of re-exports followed by followImports.
const maxReexportHops = 8

// followImports returns the class a dotted name designates, following the
// imports of project modules that re-export it: with "from .base import Base"
// in package pkg, pkg.Base is pkg.base.Base.
func (g *Graph) followImports(target string) string {
	for hop := 0; hop < maxReexportHops; hop++ {
		if _, ok := g.Nodes[target]; ok {
			return target
		}
		i := strings.LastIndex(target, ".")
		if i < 0 {
			return ""
		}
		m, ok := g.modules[target[:i]]
		if !ok {
			return ""
		}
		next, ok := m.Imports[target[i+1:]]
		if !ok || next == target {
			return ""
		}
		target = next
	}
	return ""
}

func moduleOf(dotted string) string {
	if i := strings.LastIndex(dotted, "."); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

// Bases returns the resolved bases of a class in declaration order.
// External bases carry an ID for which IsExternal reports true.
func (g *Graph) Bases(id string) []string {
	return append([]string(nil), g.bases[id]...)
}

// Subclasses returns the project classes that list id as a direct base.
func (g *Graph) Subclasses(id string) []*Node {
	var subs []*Node
	seen := make(map[string]bool)
	for _, edge := range g.Edges {
		if edge.To != id || seen[edge.From] {
			continue
		}
		if node, ok := g.Nodes[edge.From]; ok {
			subs = append(subs, node)
			seen[edge.From] = true
		}
	}
	return subs
}

// Descendants returns the IDs of every class inheriting, directly or not,
// from one of ids, sorted.
func (g *Graph) Descendants(ids ...string) []string {
	seen := make(map[string]bool)
	queue := append([]string(nil), ids...)
	var out []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, sub := range g.Subclasses(id) {
			subID := sub.Class.QualName()
			if seen[subID] {
				continue
			}
			seen[subID] = true
			out = append(out, subID)
			queue = append(queue, subID)
		}
	}
	sort.Strings(out)
	return out
}

// MRO returns the C3 linearization of a class: the class itself first, then
// its ancestors closest first. object is left out.
func (g *Graph) MRO(id string) ([]string, error) {
	mro, err := g.linearize(id, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	return append([]string(nil), mro...), nil
}

// Ancestors is the MRO without the class itself.
func (g *Graph) Ancestors(id string) ([]string, error) {
	mro, err := g.MRO(id)
	if err != nil {
		return nil, err
	}
	return mro[1:], nil
}

func (g *Graph) linearize(id string, visiting map[string]bool) ([]string, error) {
	if mro, ok := g.mro[id]; ok {
		return mro, nil
	}
	if IsExternal(id) {
		return []string{id}, nil
	}
	if _, ok := g.Nodes[id]; !ok {
		return nil, fmt.Errorf("unknown class %q", id)
	}
	if visiting[id] {
		return nil, fmt.Errorf("%w: %s inherits from itself", ErrInconsistentMRO, id)
	}
	visiting[id] = true
	defer delete(visiting, id)

	bases := g.bases[id]
	seqs := make([][]string, 0, len(bases)+1)
	for _, base := range bases {
		l, err := g.linearize(base, visiting)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, append([]string(nil), l...))
	}
	seqs = append(seqs, append([]string(nil), bases...))

	merged, ok := c3Merge(seqs)
	if !ok {
		return nil, fmt.Errorf("%w: for bases of %s", ErrInconsistentMRO, id)
	}
	mro := append([]string{id}, merged...)
	g.mro[id] = mro
	return mro, nil
}

func c3Merge(seqs [][]string) ([]string, bool) {
	var out []string
	for {
		remaining := seqs[:0]
		for _, s := range seqs {
			if len(s) > 0 {
				remaining = append(remaining, s)
			}
		}
		seqs = remaining
		if len(seqs) == 0 {
			return out, true
		}

		head := ""
		for _, s := range seqs {
			if !inTail(seqs, s[0]) {
				head = s[0]
				break
			}
		}
		if head == "" {
			return nil, false
		}

		out = append(out, head)
		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func inTail(seqs [][]string, id string) bool {
	for _, s := range seqs {
		for _, x := range s[1:] {
			if x == id {
				return true
			}
		}
	}
	return false
}

// TopoOrder lists the classes so that each one comes after all of its
// project ancestors. Ties are broken by ID. Classes caught in a cycle come
// last.
func (g *Graph) TopoOrder() []string {
	pending := make(map[string]int, len(g.Nodes))
	dependents := make(map[string][]string)
	for _, id := range g.sortedIDs() {
		pending[id] = 0
		for _, base := range g.bases[id] {
			if _, ok := g.Nodes[base]; !ok {
				continue
			}
			pending[id]++
			dependents[base] = append(dependents[base], id)
		}
	}

	var ready []string
	for _, id := range g.sortedIDs() {
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]string, 0, len(g.Nodes))
	done := make(map[string]bool, len(g.Nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		done[id] = true
		for _, sub := range dependents[id] {
			pending[sub]--
			if pending[sub] == 0 {
				ready = append(ready, sub)
			}
		}
		sort.Strings(ready)
	}

	for _, id := range g.sortedIDs() {
		if !done[id] {
			order = append(order, id)
		}
	}
	return order
}

// Metaclass returns the first metaclass declared along the MRO of a class.
// When the hierarchy has no consistent MRO the declared bases are searched
// depth-first instead.
func (g *Graph) Metaclass(id string) string {
	mro, err := g.MRO(id)
	if err != nil {
		return g.declaredMetaclass(id, make(map[string]bool))
	}
	for _, x := range mro {
		if c, ok := g.Class(x); ok && c.Metaclass != "" {
			return c.Metaclass
		}
	}
	return ""
}

func (g *Graph) declaredMetaclass(id string, seen map[string]bool) string {
	c, ok := g.Class(id)
	if !ok || seen[id] {
		return ""
	}
	seen[id] = true
	if c.Metaclass != "" {
		return c.Metaclass
	}
	for _, base := range g.bases[id] {
		if meta := g.declaredMetaclass(base, seen); meta != "" {
			return meta
		}
	}
	return ""
}

// ResolveMethod looks name up along the MRO of a class, the way attribute
// access does, and returns the defining class with the method.
func (g *Graph) ResolveMethod(id, name string) (string, *extractor.Function) {
	mro, err := g.MRO(id)
	if err != nil {
		mro = []string{id}
	}
	for _, x := range mro {
		c, ok := g.Class(x)
		if !ok {
			continue
		}
		if fn := c.Method(name); fn != nil {
			return x, fn
		}
	}
	return "", nil
}

// UnresolvedReasonCounts summarizes why base classes could not be resolved.
func (g *Graph) UnresolvedReasonCounts() map[UnresolvedReason]int {
	counts := make(map[UnresolvedReason]int)
	if g == nil {
		return counts
	}
	for _, u := range g.Unresolved {
		reason := u.Reason
		if reason == "" {
			reason = ReasonNoCandidate
		}
		counts[reason]++
	}
	return counts
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
