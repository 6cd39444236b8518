// Package ansible extracts variable definitions and role references from
// Ansible playbooks, task files, role defaults and templates.
package ansible

import (
	"fmt"
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

const builtinPrefix = "ansible.builtin."

// Vars is what can be learned statically about variables of a task list
// or playbook.
type Vars struct {
	// Defined holds set_fact and vars definitions.
	Defined *variable.Group
	// Registers holds register results, whose value is unknown.
	Registers *variable.Group
	// Roles lists the roles invoked.
	Roles []parser.StringLoc
}

func newVars() *Vars {
	return &Vars{Defined: variable.NewGroup(), Registers: variable.NewGroup()}
}

// Group returns every definition, registers last.
func (v *Vars) Group() *variable.Group {
	g := variable.NewGroup()
	g.Merge(v.Defined)
	g.Merge(v.Registers)
	return g
}

func (v *Vars) merge(o *Vars) {
	v.Defined.Merge(o.Defined)
	v.Registers.Merge(o.Registers)
	v.Roles = append(v.Roles, o.Roles...)
}

// IsRoleInclude reports whether a task key invokes a role.
func IsRoleInclude(key string) bool {
	key = strings.TrimPrefix(key, builtinPrefix)
	return key == "include_role" || key == "import_role"
}

func isSetFact(key string) bool {
	return strings.TrimPrefix(key, builtinPrefix) == "set_fact"
}

// ParseTasksText parses a task file. A file that is not a single YAML
// document is an error.
func ParseTasksText(text, path string, source variable.Source) (*Vars, error) {
	docs, err := yamlloc.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%s: expected one document, got %d", path, len(docs))
	}
	return ParseTasks(docs[0], intern.Intern(path), source), nil
}

// ParseTasks walks a task list. Tasks that do not have the expected
// shape are skipped.
func ParseTasks(node *yamlloc.Value, path intern.Path, source variable.Source) *Vars {
	out := newVars()
	if node.Kind != yamlloc.KindSeq {
		return out
	}

	for _, task := range node.Seq {
		if task.Kind != yamlloc.KindMap {
			continue
		}
		for _, p := range task.Map {
			key, ok := p.Key.AsString()
			if !ok {
				continue
			}

			switch {
			case isSetFact(key) || key == "vars":
				table, err := variable.Parse(p.Value, path, key, source)
				if err != nil {
					continue
				}
				flat := variable.NewFlat()
				variable.CollectInto(flat, "", withoutCacheable(table, isSetFact(key)), source)
				out.Defined.MergeFlat(flat)
			case key == "block" || key == "rescue" || key == "always":
				out.merge(ParseTasks(p.Value, path, source))
			case key == "register":
				if name, ok := p.Value.AsString(); ok {
					reg := variable.NewTable()
					reg.Set(variable.Variable{
						Name:   parser.NewStringLoc(name, p.Value, path),
						Value:  variable.Value{Kind: variable.String},
						Source: source,
					})
					out.Registers.Merge(variable.FromTable(reg))
				}
			case IsRoleInclude(key):
				if name, ok := p.Value.Get("name"); ok {
					if s, ok := name.AsString(); ok {
						out.Roles = append(out.Roles, parser.NewStringLoc(s, name, path))
					}
				}
			}
		}
	}
	return out
}

func withoutCacheable(t *variable.Table, setFact bool) *variable.Table {
	if !setFact {
		return t
	}
	out := variable.NewTable()
	for _, v := range t.Variables() {
		if v.Name.Value == "cacheable" || v.Name.Value == "cachable" {
			continue
		}
		out.Set(v)
	}
	return out
}
