package variable

import (
	"fmt"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// Variable is one variable definition.
type Variable struct {
	Name   parser.StringLoc
	Value  Value
	Source Source
}

// Table is an ordered set of variables defined at one scope.
type Table struct {
	names []string
	vars  map[string]Variable
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{vars: make(map[string]Variable)}
}

// Set stores v. A later definition of the same name replaces the earlier
// one but keeps its position.
func (t *Table) Set(v Variable) {
	if t.vars == nil {
		t.vars = make(map[string]Variable)
	}
	if _, ok := t.vars[v.Name.Value]; !ok {
		t.names = append(t.names, v.Name.Value)
	}
	t.vars[v.Name.Value] = v
}

// SetDefault stores v only when its name is not defined yet.
func (t *Table) SetDefault(v Variable) bool {
	if _, ok := t.vars[v.Name.Value]; ok {
		return false
	}
	t.Set(v)
	return true
}

// Get looks up a variable by name.
func (t *Table) Get(name string) (Variable, bool) {
	if t == nil {
		return Variable{}, false
	}
	v, ok := t.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns variable names in definition order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// Variables returns the variables in definition order.
func (t *Table) Variables() []Variable {
	if t == nil {
		return nil
	}
	xs := make([]Variable, 0, len(t.names))
	for _, name := range t.names {
		xs = append(xs, t.vars[name])
	}
	return xs
}

// Extend copies every variable of o into t, o winning on conflicts.
func (t *Table) Extend(o *Table) {
	for _, v := range o.Variables() {
		t.Set(v)
	}
}

// Parse converts a YAML mapping into a table. field names the YAML field
// for diagnostics and source is recorded on every variable.
func Parse(node *yamlloc.Value, path intern.Path, field string, source Source) (*Table, error) {
	if node.Kind != yamlloc.KindMap {
		return nil, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), node, path)
	}
	return parseMapping(node, path, field, source)
}

func parseMapping(node *yamlloc.Value, path intern.Path, field string, source Source) (*Table, error) {
	t := NewTable()
	for _, p := range node.Map {
		name, err := parser.MapKey(p.Key, path, field)
		if err != nil {
			return nil, err
		}
		value, err := valueFromNode(p.Value, path, name.Value, source)
		if err != nil {
			return nil, err
		}
		t.Set(Variable{Name: name, Value: value, Source: source})
	}
	return t, nil
}
