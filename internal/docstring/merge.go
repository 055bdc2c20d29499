package docstring

import "strings"

// InheritMarker, as the whole of a child prose section or item description,
// asks for the parent's version of that entry.
const InheritMarker = "{inherit}"

// Merge combines a parent's sections with a child's.
//
// Sections only one side has are copied. For a section both sides have, the
// child's prose wins, and item sections are overlaid, the child's items
// replacing the parent's. The arguments section is then rebuilt from args:
// exactly one item per argument, in order, with the placeholder text for
// arguments nobody documents. An empty arguments section is dropped.
// Canonical sections come first, in canonical order.
//
// A nil parent is treated as empty. Neither input is modified. The returned
// slice lists the arguments that got the placeholder.
func Merge(d Dialect, parent, child *Sections, args []string) (*Sections, []string) {
	if parent == nil {
		parent = NewSections()
	}
	if child == nil {
		child = NewSections()
	}
	child = stripInheritMarkers(child)

	merged := NewSections()
	for _, name := range parent.Keys() {
		pv, _ := parent.Get(name)
		cv, inChild := child.Get(name)
		switch {
		case !inChild:
			merged.Set(name, pv.clone())
		case d.HasItems(name) && pv.IsItems() && cv.IsItems():
			merged.Set(name, ItemValue(overlay(pv.Items, cv.Items)))
		default:
			merged.Set(name, cv.clone())
		}
	}
	for _, name := range child.Keys() {
		if merged.Has(name) {
			continue
		}
		cv, _ := child.Get(name)
		merged.Set(name, cv.clone())
	}

	missing := filterArgs(d, merged, args)
	return reorder(d, merged), missing
}

func overlay(parent, child *Items) *Items {
	out := parent.Clone()
	for _, name := range child.Keys() {
		desc, _ := child.Get(name)
		out.Set(name, desc)
	}
	return out
}

// filterArgs replaces the arguments section of s by one built from args.
func filterArgs(d Dialect, s *Sections, args []string) []string {
	name := d.ArgsSection()
	var documented *Items
	if v, ok := s.Get(name); ok && v.IsItems() {
		documented = v.Items
	}

	section := NewItems()
	var missing []string
	for _, arg := range args {
		if documented != nil {
			if desc, ok := documented.Get(arg); ok {
				section.Set(arg, desc)
				continue
			}
		}
		section.Set(arg, d.MissingArgText())
		missing = append(missing, arg)
	}

	if section.Len() == 0 {
		s.Delete(name)
		return missing
	}
	s.Set(name, ItemValue(section))
	return missing
}

func reorder(d Dialect, s *Sections) *Sections {
	out := NewSections()
	for _, name := range d.SectionNames() {
		if v, ok := s.Get(name); ok {
			out.Set(name, v)
		}
	}
	for _, name := range s.Keys() {
		if !out.Has(name) {
			v, _ := s.Get(name)
			out.Set(name, v)
		}
	}
	return out
}

// stripInheritMarkers returns child without the entries that ask for the
// parent's version.
func stripInheritMarkers(child *Sections) *Sections {
	out := NewSections()
	for _, name := range child.Keys() {
		v, _ := child.Get(name)
		if !v.IsItems() {
			if strings.TrimSpace(v.Text) != InheritMarker {
				out.Set(name, v)
			}
			continue
		}
		items := NewItems()
		for _, item := range v.Items.Keys() {
			desc, _ := v.Items.Get(item)
			if isMarker(desc) {
				continue
			}
			items.Set(item, desc)
		}
		if items.Len() == 0 && v.Items.Len() > 0 {
			continue
		}
		out.Set(name, ItemValue(items))
	}
	return out
}

func isMarker(desc string) bool {
	desc = strings.TrimSpace(desc)
	desc = strings.TrimSpace(strings.TrimPrefix(desc, ":"))
	return desc == InheritMarker
}
