package docstring

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SummaryKey is the key of the unlabeled leading prose block.
// Section names are never empty, so it cannot collide with one.
const SummaryKey = ""

// ordered is an insertion-ordered string-keyed map. The zero value is ready
// to use. Setting an existing key replaces its value in place.
type ordered[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// Get returns the value stored under key.
func (o *ordered[V]) Get(key string) (V, bool) {
	if o.m == nil {
		var zero V
		return zero, false
	}
	return o.m.Get(key)
}

// Has reports whether key is present.
func (o *ordered[V]) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key, appending key if it is new.
func (o *ordered[V]) Set(key string, v V) {
	if o.m == nil {
		o.m = orderedmap.New[string, V]()
	}
	o.m.Set(key, v)
}

// Delete removes key, keeping the order of the others.
func (o *ordered[V]) Delete(key string) {
	if o.m != nil {
		o.m.Delete(key)
	}
}

// Keys returns the keys in order. The slice is a copy.
func (o *ordered[V]) Keys() []string {
	var keys []string
	o.each(func(k string, _ V) { keys = append(keys, k) })
	return keys
}

// Len returns the number of entries.
func (o *ordered[V]) Len() int {
	if o.m == nil {
		return 0
	}
	return o.m.Len()
}

func (o *ordered[V]) each(fn func(key string, v V)) {
	if o.m == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Items maps item names to raw descriptions, in order of appearance.
//
// A raw description is everything following the name up to the next item,
// separator included (": desc" for Google, " : type\n    desc" for Numpy).
type Items struct {
	ordered[string]
}

// NewItems returns an empty item map.
func NewItems() *Items {
	return &Items{}
}

// ItemsOf builds an item map from alternating name, description pairs.
func ItemsOf(pairs ...string) *Items {
	it := NewItems()
	for i := 0; i+1 < len(pairs); i += 2 {
		it.Set(pairs[i], pairs[i+1])
	}
	return it
}

// Clone returns a copy of the map.
func (it *Items) Clone() *Items {
	c := NewItems()
	if it == nil {
		return c
	}
	it.each(c.Set)
	return c
}

// Value is the body of a section: either prose text or an item map.
type Value struct {
	Text  string
	Items *Items
}

// Prose returns a prose value.
func Prose(text string) Value {
	return Value{Text: text}
}

// ItemValue returns an item section value.
func ItemValue(items *Items) Value {
	if items == nil {
		items = NewItems()
	}
	return Value{Items: items}
}

// IsItems reports whether the value is an item section.
func (v Value) IsItems() bool {
	return v.Items != nil
}

func (v Value) clone() Value {
	if v.Items != nil {
		return Value{Items: v.Items.Clone()}
	}
	return v
}

// Sections is a parsed docstring: section keys mapped to bodies, in order.
//
// A Sections value is built by one Parse call, consumed by Merge or Render,
// and not shared between goroutines.
type Sections struct {
	ordered[Value]
}

// NewSections returns an empty model.
func NewSections() *Sections {
	return &Sections{}
}

// Summary returns the summary text, if any.
func (s *Sections) Summary() (string, bool) {
	v, ok := s.Get(SummaryKey)
	return v.Text, ok
}

// Clone returns a deep copy.
func (s *Sections) Clone() *Sections {
	c := NewSections()
	if s == nil {
		return c
	}
	s.each(func(k string, v Value) { c.Set(k, v.clone()) })
	return c
}

// Empty reports whether there are no sections. A nil model is empty.
func (s *Sections) Empty() bool {
	return s == nil || s.Len() == 0
}
