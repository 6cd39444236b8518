package yamlloc

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const coreTagPrefix = "tag:yaml.org,2002:"

var realForms = map[string]bool{
	".inf": true, ".Inf": true, ".INF": true,
	"+.inf": true, "+.Inf": true, "+.INF": true,
	"-.inf": true, "-.Inf": true, "-.INF": true,
	".nan": true, "NaN": true, ".NAN": true,
}

func scalar(n *yaml.Node) *Value {
	if n.Style&yaml.TaggedStyle != 0 {
		return taggedScalar(n)
	}
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return &Value{Kind: KindString, Str: n.Value}
	}
	return InferScalar(n.Value)
}

// InferScalar types a plain scalar by its lexical shape.
func InferScalar(s string) *Value {
	if i, ok := prefixedInt(s); ok {
		return &Value{Kind: KindInt, Int: i}
	}

	switch s {
	case "~", "null":
		return &Value{Kind: KindNull}
	case "true":
		return &Value{Kind: KindBool, Bool: true}
	case "false":
		return &Value{Kind: KindBool, Bool: false}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Value{Kind: KindInt, Int: i}
	}
	if isReal(s) {
		return &Value{Kind: KindReal, Str: s}
	}
	return &Value{Kind: KindString, Str: s}
}

func prefixedInt(s string) (int64, bool) {
	var (
		digits string
		base   int
	)
	switch {
	case strings.HasPrefix(s, "0x"):
		digits, base = s[2:], 16
	case strings.HasPrefix(s, "0o"):
		digits, base = s[2:], 8
	case strings.HasPrefix(s, "+"):
		digits, base = s[1:], 10
	default:
		return 0, false
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, false
	}
	i, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

func isReal(s string) bool {
	if realForms[s] {
		return true
	}
	if s == "" || strings.ContainsRune(s, '_') {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func taggedScalar(n *yaml.Node) *Value {
	tag := n.Tag
	if strings.HasPrefix(tag, "!!") {
		tag = coreTagPrefix + tag[2:]
	}
	if !strings.HasPrefix(tag, coreTagPrefix) {
		return &Value{Kind: KindString, Str: n.Value}
	}

	bad := &Value{Kind: KindBadValue}
	switch strings.TrimPrefix(tag, coreTagPrefix) {
	case "bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil || (n.Value != "true" && n.Value != "false") {
			return bad
		}
		return &Value{Kind: KindBool, Bool: b}
	case "int":
		if i, ok := prefixedInt(n.Value); ok {
			return &Value{Kind: KindInt, Int: i}
		}
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return bad
		}
		return &Value{Kind: KindInt, Int: i}
	case "float":
		if !isReal(n.Value) {
			return bad
		}
		return &Value{Kind: KindReal, Str: n.Value}
	case "null":
		if n.Value != "~" && n.Value != "null" && n.Value != "" {
			return bad
		}
		return &Value{Kind: KindNull}
	default:
		return &Value{Kind: KindString, Str: n.Value}
	}
}
