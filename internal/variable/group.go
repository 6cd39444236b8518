package variable

import (
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/parser"
)

// ArrayIndexKey is the synthetic member name that stands for "any element"
// of an array whose elements are hashes.
const ArrayIndexKey = "ArRaY_InDeX"

// Info is one occurrence of a variable.
type Info struct {
	Name   parser.StringLoc
	Value  string
	Kind   Kind
	Source Source
}

// GroupInfo holds every occurrence of a name and its nested members.
type GroupInfo struct {
	Locs    []Info
	Members Group
}

// Group is a nested, multi-occurrence view of variables across scopes.
// The zero value is an empty group.
type Group struct {
	names   []string
	entries map[string]*GroupInfo
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// FromTable builds a group holding one occurrence per variable of t.
func FromTable(t *Table) *Group {
	g := NewGroup()
	for _, v := range t.Variables() {
		entry := g.entry(v.Name.Value)
		entry.Locs = append(entry.Locs, Info{
			Name:   v.Name,
			Value:  v.Value.Show(),
			Kind:   v.Value.Kind,
			Source: v.Source,
		})

		switch v.Value.Kind {
		case Hash:
			entry.Members.Merge(FromTable(v.Value.Hash))
		case Array:
			if len(v.Value.Array) > 0 && v.Value.Array[0].Kind == Hash {
				elem := NewGroup()
				elem.entry(ArrayIndexKey).Members.Merge(FromTable(v.Value.Array[0].Hash))
				entry.Members.Merge(elem)
			}
		}
	}
	return g
}

func (g *Group) entry(name string) *GroupInfo {
	if g.entries == nil {
		g.entries = make(map[string]*GroupInfo)
	}
	if e, ok := g.entries[name]; ok {
		return e
	}
	e := &GroupInfo{}
	g.entries[name] = e
	g.names = append(g.names, name)
	return e
}

// Get returns the entry for name.
func (g *Group) Get(name string) (*GroupInfo, bool) {
	if g == nil || g.entries == nil {
		return nil, false
	}
	e, ok := g.entries[name]
	return e, ok
}

// Len returns the number of top-level names.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.names)
}

// Names returns top-level names in insertion order.
func (g *Group) Names() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.names...)
}

// Merge appends every occurrence of o to g, merging members recursively.
func (g *Group) Merge(o *Group) {
	if o == nil {
		return
	}
	for _, name := range o.names {
		src := o.entries[name]
		dst := g.entry(name)
		dst.Locs = append(dst.Locs, src.Locs...)
		dst.Members.Merge(&src.Members)
	}
}

// Add is Merge that keeps the occurrences already present for a name.
// Only names and members missing from g are taken from o.
func (g *Group) Add(o *Group) {
	if o == nil {
		return
	}
	for _, name := range o.names {
		src := o.entries[name]
		if dst, ok := g.Get(name); ok {
			dst.Members.Add(&src.Members)
			continue
		}
		dst := g.entry(name)
		dst.Locs = append(dst.Locs, src.Locs...)
		dst.Members.Merge(&src.Members)
	}
}

// Lookup follows a dotted variable path through nested members.
func (g *Group) Lookup(stack []string) (*GroupInfo, bool) {
	if len(stack) == 0 {
		return nil, false
	}
	cur := g
	var e *GroupInfo
	for _, name := range stack {
		var ok bool
		e, ok = cur.Get(name)
		if !ok {
			return nil, false
		}
		cur = &e.Members
	}
	return e, true
}

// Flatten lists every leaf occurrence with its dotted name. Hash
// occurrences are represented by their members and the synthetic array
// member is not listed.
func (g *Group) Flatten() []Info {
	var xs []Info
	g.flatten("", &xs)
	return xs
}

func (g *Group) flatten(prefix string, xs *[]Info) {
	for _, name := range g.Names() {
		if name == ArrayIndexKey {
			continue
		}
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}

		e := g.entries[name]
		for _, info := range e.Locs {
			if info.Kind == Hash && e.Members.Len() > 0 {
				continue
			}
			info.Name = info.Name.WithValue(full)
			*xs = append(*xs, info)
		}
		e.Members.flatten(full, xs)
	}
}

// MergeFlat merges dotted occurrences into g, creating nested members
// for every path segment. Intermediate segments get no occurrences.
func (g *Group) MergeFlat(f *Flat) {
	for _, info := range f.Infos() {
		segments := strings.Split(info.Name.Value, ".")
		cur := g
		var e *GroupInfo
		for _, s := range segments {
			e = cur.entry(s)
			cur = &e.Members
		}
		leaf := info
		leaf.Name = info.Name.WithValue(segments[len(segments)-1])
		e.Locs = append(e.Locs, leaf)
	}
}
