package token

import (
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/ansible"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

func classifyAnsible(text string, pos Position) (*Token, bool) {
	loc, ok := locate(text, pos)
	if !ok {
		return nil, false
	}

	if isRoleReference(loc) {
		name, ok := RoleWord(text, pos)
		if !ok {
			return nil, false
		}
		return &Token{Value: name, Type: TypeRole, Side: loc.side, KeyStack: loc.keys}, true
	}

	stack, ok := VarWord(text, pos)
	if !ok {
		return nil, false
	}

	var tok *Token
	if i := definitionScope(loc); i >= 0 && loc.side == SideLeft {
		full := append(append([]string(nil), loc.keys[i+1:]...), stack[len(stack)-1])
		tok = variableToken(full, SideLeft, loc.keys)
	} else {
		tok = variableToken(stack, loc.side, loc.keys)
	}
	tok.RoleName = enclosingRole(loc)
	return tok, true
}

// isRoleReference matches `role: x` entries, plain items of a roles list
// and the name of an include_role or import_role task.
func isRoleReference(loc *location) bool {
	if loc.side != SideRight {
		return false
	}
	keys := loc.keys
	n := len(keys)
	switch {
	case n >= 1 && keys[n-1] == "role":
		return true
	case n >= 2 && keys[n-2] == "roles" && keys[n-1] == variable.ArrayIndexKey:
		return true
	case n >= 2 && keys[n-1] == "name" && ansible.IsRoleInclude(keys[n-2]):
		return true
	}
	return false
}

// definitionScope returns the index of the innermost key that defines
// variables, or -1.
func definitionScope(loc *location) int {
	for i := len(loc.keys) - 1; i >= 0; i-- {
		key := strings.TrimPrefix(loc.keys[i], "ansible.builtin.")
		if key == "set_fact" || key == "vars" {
			return i
		}
	}
	return -1
}

// enclosingRole returns the role invoked by the innermost enclosing task
// or roles entry.
func enclosingRole(loc *location) string {
	for i := len(loc.maps) - 1; i >= 0; i-- {
		m := loc.maps[i]
		for _, p := range m.Map {
			key, _ := p.Key.AsString()
			if ansible.IsRoleInclude(key) {
				if name, ok := p.Value.Get("name"); ok {
					if s, ok := name.AsString(); ok && !strings.Contains(s, Marker) {
						return s
					}
				}
			}
		}
		if role, ok := m.Get("role"); ok && role.Kind == yamlloc.KindString && !strings.Contains(role.Str, Marker) {
			return role.Str
		}
	}
	return ""
}
