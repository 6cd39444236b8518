package ansible

import (
	"fmt"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

var taskSections = map[string]bool{
	"tasks":      true,
	"pre_tasks":  true,
	"post_tasks": true,
	"handlers":   true,
}

// Keys of a roles: entry that are not role variables.
var roleEntryKeys = map[string]bool{
	"role": true,
	"name": true,
	"vars": true,
	"tags": true,
	"when": true,
}

// ParsePlaybook collects play vars, task variables and role
// invocations of every play in a playbook.
func ParsePlaybook(text, path string) (*Vars, error) {
	docs, err := yamlloc.Load(text)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	p := intern.Intern(path)
	source := variable.PlaybookSource(p)
	out := newVars()
	for _, doc := range docs {
		if doc.Kind != yamlloc.KindSeq {
			continue
		}
		for _, play := range doc.Seq {
			if play.Kind != yamlloc.KindMap {
				continue
			}
			for _, kv := range play.Map {
				key, _ := kv.Key.AsString()
				switch {
				case key == "vars":
					if table, err := variable.Parse(kv.Value, p, "vars", source); err == nil {
						out.Defined.MergeFlat(variable.Collect("", table, source))
					}
				case taskSections[key]:
					out.merge(ParseTasks(kv.Value, p, source))
				case key == "roles":
					out.merge(parseRoleEntries(kv.Value, p, source))
				}
			}
		}
	}
	return out, nil
}

func parseRoleEntries(node *yamlloc.Value, path intern.Path, source variable.Source) *Vars {
	out := newVars()
	if node.Kind != yamlloc.KindSeq {
		return out
	}

	for _, entry := range node.Seq {
		if s, ok := entry.AsString(); ok {
			out.Roles = append(out.Roles, parser.NewStringLoc(s, entry, path))
			continue
		}
		if entry.Kind != yamlloc.KindMap {
			continue
		}

		if ref, ok := roleEntryName(entry); ok {
			out.Roles = append(out.Roles, parser.NewStringLoc(ref.Str, ref, path))
		}

		var table *variable.Table
		if vars, ok := entry.Get("vars"); ok {
			t, err := variable.Parse(vars, path, "vars", source)
			if err != nil {
				continue
			}
			table = t
		} else {
			inline := &yamlloc.Value{Kind: yamlloc.KindMap, Line: entry.Line, Col: entry.Col}
			for _, kv := range entry.Map {
				if key, ok := kv.Key.AsString(); ok && roleEntryKeys[key] {
					continue
				}
				inline.Map = append(inline.Map, kv)
			}
			t, err := variable.Parse(inline, path, "roles", source)
			if err != nil {
				continue
			}
			table = t
		}
		out.Defined.MergeFlat(variable.Collect("", table, source))
	}
	return out
}

// roleEntryName returns the role reference of a roles: entry.
func roleEntryName(entry *yamlloc.Value) (*yamlloc.Value, bool) {
	for _, key := range []string{"role", "name"} {
		if v, ok := entry.Get(key); ok && v.Kind == yamlloc.KindString {
			return v, true
		}
	}
	return nil, false
}
