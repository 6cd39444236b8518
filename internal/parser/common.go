package parser

import (
	"fmt"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// StringLoc is a string value together with where it was defined.
// Line and Col are zero-based.
type StringLoc struct {
	Value string
	Path  intern.Path
	Line  int
	Col   int
}

// NewStringLoc returns a StringLoc holding value at the location of node.
func NewStringLoc(value string, node *yamlloc.Value, path intern.Path) StringLoc {
	return StringLoc{Value: value, Path: path, Line: node.Line, Col: node.Col}
}

// FileStart returns a StringLoc pointing at the beginning of path.
func FileStart(value string, path intern.Path) StringLoc {
	return StringLoc{Value: value, Path: path}
}

// WithValue copies the location of s onto a different value.
func (s StringLoc) WithValue(value string) StringLoc {
	s.Value = value
	return s
}

// Less orders locations by path, line and column.
func (s StringLoc) Less(o StringLoc) bool {
	if s.Path.String() != o.Path.String() {
		return s.Path.String() < o.Path.String()
	}
	if s.Line != o.Line {
		return s.Line < o.Line
	}
	return s.Col < o.Col
}

func (s StringLoc) String() string {
	return fmt.Sprintf("%s %s:%d:%d", s.Value, s.Path, s.Line+1, s.Col+1)
}

// ParseError reports a YAML node whose shape does not match the field
// it was found in.
type ParseError struct {
	Msg   string
	Value string
	Path  string
	Line  int
	Col   int
}

// NewParseError builds a ParseError located at node.
func NewParseError(msg string, node *yamlloc.Value, path intern.Path) *ParseError {
	return &ParseError{
		Msg:   msg,
		Value: node.String(),
		Path:  path.String(),
		Line:  node.Line,
		Col:   node.Col,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s (got %s)", e.Path, e.Line+1, e.Col+1, e.Msg, e.Value)
}

// ParseString requires node to be a string.
func ParseString(node *yamlloc.Value, path intern.Path, field string) (StringLoc, error) {
	s, ok := node.AsString()
	if !ok {
		return StringLoc{}, NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), node, path)
	}
	return NewStringLoc(s, node, path), nil
}

// ParseOptionalString is ParseString that accepts null as absent.
func ParseOptionalString(node *yamlloc.Value, path intern.Path, field string) (*StringLoc, error) {
	if node == nil || node.IsNull() {
		return nil, nil
	}
	s, err := ParseString(node, path, field)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseStringList requires node to be a list of strings.
func ParseStringList(node *yamlloc.Value, path intern.Path, field string) ([]StringLoc, error) {
	if node.Kind != yamlloc.KindSeq {
		return nil, NewParseError(fmt.Sprintf("%s should be a list", field), node, path)
	}
	xs := make([]StringLoc, 0, len(node.Seq))
	for _, item := range node.Seq {
		s, err := ParseString(item, path, field)
		if err != nil {
			return nil, err
		}
		xs = append(xs, s)
	}
	return xs, nil
}

// ParseStringOrList accepts either a single string or a list of strings.
func ParseStringOrList(node *yamlloc.Value, path intern.Path, field string) ([]StringLoc, error) {
	if node.Kind == yamlloc.KindString {
		return []StringLoc{NewStringLoc(node.Str, node, path)}, nil
	}
	return ParseStringList(node, path, field)
}

// MapKey requires a mapping key to be a string.
func MapKey(key *yamlloc.Value, path intern.Path, field string) (StringLoc, error) {
	s, ok := key.AsString()
	if !ok {
		return StringLoc{}, NewParseError(fmt.Sprintf("Failed to parse a key of %s", field), key, path)
	}
	return NewStringLoc(s, key, path), nil
}
