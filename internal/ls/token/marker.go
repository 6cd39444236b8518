package token

import (
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// Marker is inserted at the cursor before re-parsing a document.
const Marker = "SeRpAt"

// insertMarker returns text with Marker inserted at pos. A column past
// the end of the line is clamped to the line end.
func insertMarker(text string, pos Position) (string, bool) {
	if pos.Line < 0 || pos.Col < 0 {
		return "", false
	}
	lines := strings.SplitAfter(text, "\n")
	if pos.Line >= len(lines) {
		return "", false
	}

	offset := 0
	for _, l := range lines[:pos.Line] {
		offset += len(l)
	}
	line := []rune(strings.TrimRight(lines[pos.Line], "\r\n"))
	col := min(pos.Col, len(line))
	offset += len(string(line[:col]))

	return text[:offset] + Marker + text[offset:], true
}

// location is where the marker was found in the re-parsed document.
type location struct {
	keys []string
	side Side
	// maps are the mappings enclosing the marker, outermost first.
	maps []*yamlloc.Value
}

// locate re-parses text with the marker at pos and returns the keys
// leading to it. Sequence items are recorded as the array index key,
// except the items of a top-level sequence.
func locate(text string, pos Position) (*location, bool) {
	marked, ok := insertMarker(text, pos)
	if !ok {
		return nil, false
	}
	docs, err := yamlloc.Load(marked)
	if err != nil {
		return nil, false
	}

	for _, doc := range docs {
		loc := &location{}
		if doc.Kind == yamlloc.KindSeq {
			for _, item := range doc.Seq {
				if loc.walk(item) {
					return loc, true
				}
			}
			continue
		}
		if loc.walk(doc) {
			return loc, true
		}
	}
	return nil, false
}

func (l *location) walk(v *yamlloc.Value) bool {
	switch v.Kind {
	case yamlloc.KindString:
		if strings.Contains(v.Str, Marker) {
			l.side = SideRight
			return true
		}
	case yamlloc.KindSeq:
		l.keys = append(l.keys, variable.ArrayIndexKey)
		for _, item := range v.Seq {
			if l.walk(item) {
				return true
			}
		}
		l.keys = l.keys[:len(l.keys)-1]
	case yamlloc.KindMap:
		l.maps = append(l.maps, v)
		for _, p := range v.Map {
			key, ok := p.Key.AsString()
			if !ok {
				continue
			}
			if strings.Contains(key, Marker) {
				l.side = SideLeft
				return true
			}
			l.keys = append(l.keys, key)
			if l.walk(p.Value) {
				return true
			}
			l.keys = l.keys[:len(l.keys)-1]
		}
		l.maps = l.maps[:len(l.maps)-1]
	}
	return false
}
