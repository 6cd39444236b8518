// Package token classifies the word under an editor cursor in Zuul
// config and Ansible files.
package token

import (
	"log/slog"
)

// Position is a 0-based line and rune column.
type Position struct {
	Line int
	Col  int
}

// Side tells whether a token is a mapping key or a value.
type Side int

const (
	SideUnknown Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "unknown"
}

// Type is the meaning of a token.
type Type int

const (
	TypeVariable Type = iota
	TypeRole
	TypeJob
	TypeProjectTemplate
	TypeZuulProperty
	TypePlaybook
)

func (t Type) String() string {
	switch t {
	case TypeVariable:
		return "variable"
	case TypeRole:
		return "role"
	case TypeJob:
		return "job"
	case TypeProjectTemplate:
		return "project-template"
	case TypeZuulProperty:
		return "zuul-property"
	case TypePlaybook:
		return "playbook"
	}
	return "unknown"
}

// Token is a classified word.
type Token struct {
	Value    string
	File     File
	Type     Type
	Side     Side
	KeyStack []string
	// VarStack is the variable path ending with Value. Variables only.
	VarStack []string
	// RoleName is the role whose invocation encloses a variable.
	RoleName string
}

// Classify returns the token under pos in text, the current content of
// the file at path.
func Classify(path, text string, pos Position) (*Token, bool) {
	file, ok := ParseFile(path)
	if !ok {
		return nil, false
	}

	var tok *Token
	switch file.Kind {
	case FileZuulConfig:
		tok, ok = classifyZuul(text, pos)
	case FilePlaybook, FileRoleTasks:
		tok, ok = classifyAnsible(text, pos)
	case FileRoleDefaults:
		tok, ok = classifyDefaults(text, pos)
	case FileRoleTemplates:
		tok, ok = classifyVar(text, pos)
	default:
		return nil, false
	}
	if !ok {
		return nil, false
	}

	tok.File = file
	slog.Debug("classified token", "path", path, "value", tok.Value, "type", tok.Type.String(), "side", tok.Side.String(), "keys", tok.KeyStack)
	return tok, true
}

func variableToken(stack []string, side Side, keys []string) *Token {
	return &Token{
		Value:    stack[len(stack)-1],
		Type:     TypeVariable,
		Side:     side,
		KeyStack: keys,
		VarStack: stack,
	}
}

// classifyVar reads a dotted variable reference without looking at the
// document structure.
func classifyVar(text string, pos Position) (*Token, bool) {
	stack, ok := VarWord(text, pos)
	if !ok {
		return nil, false
	}
	return variableToken(stack, SideUnknown, nil), true
}

// classifyDefaults treats keys of a defaults file as variable
// definitions, nested keys included.
func classifyDefaults(text string, pos Position) (*Token, bool) {
	stack, ok := VarWord(text, pos)
	if !ok {
		return nil, false
	}
	loc, ok := locate(text, pos)
	if !ok || loc.side != SideLeft {
		return variableToken(stack, SideRight, nil), true
	}
	full := append(append([]string(nil), loc.keys...), stack[len(stack)-1])
	return variableToken(full, SideLeft, loc.keys), true
}
