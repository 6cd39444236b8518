package variable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// Kind is the type of a variable value.
type Kind int

const (
	Null Kind = iota
	Integer
	Boolean
	Real
	String
	Array
	Hash
)

// Value is a variable value decoupled from the YAML tree.
type Value struct {
	Kind  Kind
	Int   int64
	Bool  bool
	Str   string
	Array []Value
	Hash  *Table
}

// Show renders the value for listings.
func (v Value) Show() string {
	switch v.Kind {
	case Null:
		return "null"
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Boolean:
		return strconv.FormatBool(v.Bool)
	case Real, String:
		return v.Str
	case Array:
		xs := make([]string, 0, len(v.Array))
		for _, x := range v.Array {
			xs = append(xs, x.Show())
		}
		return "[" + strings.Join(xs, ", ") + "]"
	case Hash:
		xs := make([]string, 0, v.Hash.Len())
		for _, x := range v.Hash.Variables() {
			xs = append(xs, x.Name.Value+": "+x.Value.Show())
		}
		return "{" + strings.Join(xs, ", ") + "}"
	}
	return ""
}

func valueFromNode(node *yamlloc.Value, path intern.Path, field string, source Source) (Value, error) {
	switch node.Kind {
	case yamlloc.KindNull:
		return Value{Kind: Null}, nil
	case yamlloc.KindInt:
		return Value{Kind: Integer, Int: node.Int}, nil
	case yamlloc.KindBool:
		return Value{Kind: Boolean, Bool: node.Bool}, nil
	case yamlloc.KindReal:
		return Value{Kind: Real, Str: node.Str}, nil
	case yamlloc.KindString:
		return Value{Kind: String, Str: node.Str}, nil
	case yamlloc.KindSeq:
		xs := make([]Value, 0, len(node.Seq))
		for _, item := range node.Seq {
			x, err := valueFromNode(item, path, field, source)
			if err != nil {
				return Value{}, err
			}
			xs = append(xs, x)
		}
		return Value{Kind: Array, Array: xs}, nil
	case yamlloc.KindMap:
		t, err := parseMapping(node, path, field, source)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Hash, Hash: t}, nil
	}
	return Value{}, parser.NewParseError(fmt.Sprintf("Unsupported value in %s", field), node, path)
}
