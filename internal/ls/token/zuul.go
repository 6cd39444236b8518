package token

import (
	"slices"

	"github.com/zuul-tools/zuul-ls/internal/variable"
)

var playbookKeys = []string{"pre-run", "run", "post-run", "clean-run"}

func classifyZuul(text string, pos Position) (*Token, bool) {
	loc, ok := locate(text, pos)
	if !ok {
		return nil, false
	}
	keys := loc.keys

	if len(keys) <= 1 && loc.side == SideLeft {
		name, ok := NameWord(text, pos)
		if !ok {
			return nil, false
		}
		return &Token{Value: name, Type: TypeZuulProperty, Side: SideLeft, KeyStack: keys}, true
	}
	if len(keys) < 2 {
		return nil, false
	}

	switch keys[0] {
	case "job":
		return classifyJob(text, pos, loc)
	case "project", "project-template":
		return classifyProject(text, pos, loc)
	}
	return nil, false
}

func classifyJob(text string, pos Position, loc *location) (*Token, bool) {
	keys := loc.keys
	switch {
	case (keys[1] == "name" || keys[1] == "parent") && len(keys) == 2 && loc.side == SideRight:
		return nameToken(text, pos, TypeJob, loc)
	case keys[1] == "vars":
		if loc.side == SideLeft {
			name, ok := NameWord(text, pos)
			if !ok {
				return nil, false
			}
			stack := append(append([]string(nil), keys[2:]...), name)
			return variableToken(stack, SideLeft, keys), true
		}
		stack, ok := VarWord(text, pos)
		if !ok {
			return nil, false
		}
		return variableToken(stack, SideRight, keys), true
	case slices.Contains(playbookKeys, keys[1]) && loc.side == SideRight:
		path, ok := PathWord(text, pos)
		if !ok {
			return nil, false
		}
		return &Token{Value: path, Type: TypePlaybook, Side: SideRight, KeyStack: keys}, true
	}
	return nil, false
}

func classifyProject(text string, pos Position, loc *location) (*Token, bool) {
	keys := loc.keys
	switch {
	case len(keys) == 4 && keys[2] == "jobs" && keys[3] == variable.ArrayIndexKey:
		return nameToken(text, pos, TypeJob, loc)
	case len(keys) == 3 && keys[1] == "templates" && keys[2] == variable.ArrayIndexKey:
		return nameToken(text, pos, TypeProjectTemplate, loc)
	case len(keys) == 2 && keys[0] == "project-template" && keys[1] == "name" && loc.side == SideRight:
		return nameToken(text, pos, TypeProjectTemplate, loc)
	}
	return nil, false
}

func nameToken(text string, pos Position, typ Type, loc *location) (*Token, bool) {
	name, ok := NameWord(text, pos)
	if !ok {
		return nil, false
	}
	return &Token{Value: name, Type: typ, Side: loc.side, KeyStack: loc.keys}, true
}
