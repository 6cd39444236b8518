package token

import (
	"strings"
)

type charClass func(r rune) bool

func isVarChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '.'
}

func isRoleChar(r rune) bool {
	return isVarChar(r) || r == '/' || r == '-'
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

func isPathChar(r rune) bool {
	return r != ' ' && r != '\t' && r != '\r' && r != '\n'
}

func lineAt(text string, line int) (string, bool) {
	if line < 0 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	if line >= len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line], "\r"), true
}

// findWord splits line into maximal runs of accepted characters and
// returns the run containing col and its first rune index. A cursor
// right after the last character still selects the run.
func findWord(line string, col int, accept charClass) (string, int, bool) {
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		if !accept(runes[i]) {
			continue
		}
		b := i
		for i < len(runes) && accept(runes[i]) {
			i++
		}
		if col >= b && col <= i {
			return string(runes[b:i]), b, true
		}
	}
	return "", 0, false
}

func word(text string, pos Position, accept charClass) (string, bool) {
	line, ok := lineAt(text, pos.Line)
	if !ok {
		return "", false
	}
	w, _, ok := findWord(line, pos.Col, accept)
	return w, ok
}

// VarWord returns the dotted variable path under the cursor, cut after
// the segment the cursor is in.
func VarWord(text string, pos Position) ([]string, bool) {
	line, ok := lineAt(text, pos.Line)
	if !ok {
		return nil, false
	}
	raw, begin, ok := findWord(line, pos.Col, isVarChar)
	if !ok {
		return nil, false
	}
	return sliceDotted(raw, pos.Col-begin), true
}

func sliceDotted(raw string, offset int) []string {
	segments := strings.Split(raw, ".")
	total := 0
	for i, s := range segments {
		total += len([]rune(s)) + 1
		if offset < total {
			return segments[:i+1]
		}
	}
	return segments
}

// RoleWord returns a role path such as subdir/nested-role.
func RoleWord(text string, pos Position) (string, bool) {
	return word(text, pos, isRoleChar)
}

// NameWord returns a job or template name.
func NameWord(text string, pos Position) (string, bool) {
	return word(text, pos, isNameChar)
}

// PathWord returns the whitespace delimited word under the cursor.
func PathWord(text string, pos Position) (string, bool) {
	return word(text, pos, isPathChar)
}
