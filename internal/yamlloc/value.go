// Package yamlloc loads YAML into a tree whose every node carries its
// source location.
package yamlloc

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a located value.
type Kind int

const (
	KindBadValue Kind = iota
	KindNull
	KindBool
	KindInt
	KindReal
	KindString
	KindSeq
	KindMap
)

var kindNames = [...]string{
	KindBadValue: "bad value",
	KindNull:     "null",
	KindBool:     "boolean",
	KindInt:      "integer",
	KindReal:     "real",
	KindString:   "string",
	KindSeq:      "array",
	KindMap:      "hash",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a YAML node tagged with its zero-based line and column.
type Value struct {
	Kind Kind
	Line int
	Col  int

	Bool bool
	Int  int64
	// Str holds string scalars and the source text of reals.
	Str string

	Seq []*Value
	Map []Pair
}

// Pair is one entry of a mapping. Mappings keep insertion order.
type Pair struct {
	Key   *Value
	Value *Value
}

// Get returns the value stored under a string key.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindMap {
		return nil, false
	}
	for _, p := range v.Map {
		if p.Key.Kind == KindString && p.Key.Str == key {
			return p.Value, true
		}
	}
	return nil, false
}

// AsString returns the scalar string and whether v is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// IsNull reports whether v is a YAML null.
func (v *Value) IsNull() bool {
	return v != nil && v.Kind == KindNull
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.Seq != nil {
		c.Seq = make([]*Value, len(v.Seq))
		for i, x := range v.Seq {
			c.Seq[i] = x.Clone()
		}
	}
	if v.Map != nil {
		c.Map = make([]Pair, len(v.Map))
		for i, p := range v.Map {
			c.Map[i] = Pair{Key: p.Key.Clone(), Value: p.Value.Clone()}
		}
	}
	return &c
}

// String renders v in a compact debug form used in diagnostics.
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	if v == nil {
		b.WriteString("<nil>")
		return
	}
	switch v.Kind {
	case KindBadValue:
		b.WriteString("BadValue")
	case KindNull:
		b.WriteString("null")
	case KindBool:
		fmt.Fprintf(b, "%t", v.Bool)
	case KindInt:
		fmt.Fprintf(b, "%d", v.Int)
	case KindReal:
		b.WriteString(v.Str)
	case KindString:
		fmt.Fprintf(b, "%q", v.Str)
	case KindSeq:
		b.WriteByte('[')
		for i, x := range v.Seq {
			if i > 0 {
				b.WriteString(", ")
			}
			x.write(b)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, p := range v.Map {
			if i > 0 {
				b.WriteString(", ")
			}
			p.Key.write(b)
			b.WriteString(": ")
			p.Value.write(b)
		}
		b.WriteByte('}')
	}
}
