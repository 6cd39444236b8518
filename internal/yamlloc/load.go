package yamlloc

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScanError reports malformed YAML. Line and Col are zero-based.
type ScanError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at line %d column %d", e.Msg, e.Line+1, e.Col+1)
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Load parses every document in text. A failure in any document fails
// the whole call and no documents are returned.
func Load(text string) ([]*Value, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var docs []*Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toScanError(err)
		}

		b := &builder{anchors: make(map[string]*Value)}
		doc, err := b.document(&node)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func toScanError(err error) error {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	line := 0
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			line = n - 1
		}
	}
	return &ScanError{Line: line, Msg: msg}
}

type builder struct {
	// Only the first node registered under an anchor name is kept.
	anchors map[string]*Value
}

func (b *builder) document(n *yaml.Node) (*Value, error) {
	if n.Kind != yaml.DocumentNode {
		return b.node(n)
	}
	if len(n.Content) == 0 {
		return &Value{Kind: KindBadValue}, nil
	}
	root := n.Content[0]
	if root.Kind == yaml.ScalarNode && root.Value == "" && root.Style == 0 && root.Tag == "!!null" {
		return &Value{Kind: KindBadValue}, nil
	}
	return b.node(root)
}

func (b *builder) node(n *yaml.Node) (*Value, error) {
	var v *Value
	switch n.Kind {
	case yaml.ScalarNode:
		v = scalar(n)
	case yaml.SequenceNode:
		v = &Value{Kind: KindSeq, Seq: make([]*Value, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := b.node(c)
			if err != nil {
				return nil, err
			}
			v.Seq = append(v.Seq, item)
		}
	case yaml.MappingNode:
		m, err := b.mapping(n)
		if err != nil {
			return nil, err
		}
		v = m
	case yaml.AliasNode:
		if target, ok := b.anchors[n.Value]; ok {
			v = target.Clone()
		} else {
			v = &Value{Kind: KindBadValue}
		}
	case yaml.DocumentNode:
		return b.document(n)
	default:
		v = &Value{Kind: KindBadValue}
	}

	v.Line = max(n.Line-1, 0)
	v.Col = max(n.Column-1, 0)

	if n.Anchor != "" && n.Kind != yaml.AliasNode {
		if _, seen := b.anchors[n.Anchor]; !seen {
			b.anchors[n.Anchor] = v
		}
	}
	return v, nil
}

func (b *builder) mapping(n *yaml.Node) (*Value, error) {
	v := &Value{Kind: KindMap, Map: make([]Pair, 0, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, err := b.node(n.Content[i])
		if err != nil {
			return nil, err
		}
		for _, p := range v.Map {
			if sameKey(p.Key, key) {
				return nil, &ScanError{Line: key.Line, Col: key.Col, Msg: "duplicated key in mapping"}
			}
		}
		val, err := b.node(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		v.Map = append(v.Map, Pair{Key: key, Value: val})
	}
	return v, nil
}

func sameKey(a, b *Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInt:
		return a.Int == b.Int
	case KindReal, KindString:
		return a.Str == b.Str
	}
	return false
}
