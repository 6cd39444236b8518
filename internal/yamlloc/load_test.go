package yamlloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferScalar(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"true", KindBool},
		{"false", KindBool},
		{"~", KindNull},
		{"null", KindNull},
		{"123", KindInt},
		{"-42", KindInt},
		{"0x1F", KindInt},
		{"0o17", KindInt},
		{"+5", KindInt},
		{".inf", KindReal},
		{"-.inf", KindReal},
		{".nan", KindReal},
		{"1.5", KindReal},
		{"1e3", KindReal},
		{"hello", KindString},
		{"0xZZ", KindString},
		{"True", KindString},
		{"yes", KindString},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := InferScalar(tt.input)
			if got.Kind != tt.kind {
				t.Errorf("InferScalar(%q) = %v, want %v", tt.input, got.Kind, tt.kind)
			}
		})
	}
}

func TestInferScalarValues(t *testing.T) {
	assert.Equal(t, int64(31), InferScalar("0x1F").Int)
	assert.Equal(t, int64(15), InferScalar("0o17").Int)
	assert.Equal(t, int64(5), InferScalar("+5").Int)
	assert.Equal(t, "-.inf", InferScalar("-.inf").Str)
	assert.True(t, InferScalar("true").Bool)
}

func TestLoadLocations(t *testing.T) {
	docs, err := Load("- job:\n    name: base\n    parent: null\n")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	root := docs[0]
	require.Equal(t, KindSeq, root.Kind)
	job, ok := root.Seq[0].Get("job")
	require.True(t, ok)

	name, ok := job.Get("name")
	require.True(t, ok)
	assert.Equal(t, "base", name.Str)
	assert.Equal(t, 1, name.Line)
	assert.Equal(t, 10, name.Col)

	parent, ok := job.Get("parent")
	require.True(t, ok)
	assert.True(t, parent.IsNull())
}

func TestLoadQuotedIsString(t *testing.T) {
	docs, err := Load("a: \"123\"\nb: '~'\nc: 123\n")
	require.NoError(t, err)

	a, _ := docs[0].Get("a")
	b, _ := docs[0].Get("b")
	c, _ := docs[0].Get("c")
	assert.Equal(t, KindString, a.Kind)
	assert.Equal(t, KindString, b.Kind)
	assert.Equal(t, KindInt, c.Kind)
}

func TestLoadTags(t *testing.T) {
	docs, err := Load("a: !!int 12\nb: !!int abc\nc: !!bool maybe\nd: !!float 1.5\ne: !!str 12\nf: !!null ~\n")
	require.NoError(t, err)

	tests := []struct {
		key  string
		kind Kind
	}{
		{"a", KindInt},
		{"b", KindBadValue},
		{"c", KindBadValue},
		{"d", KindReal},
		{"e", KindString},
		{"f", KindNull},
	}
	for _, tt := range tests {
		v, ok := docs[0].Get(tt.key)
		require.True(t, ok, tt.key)
		if v.Kind != tt.kind {
			t.Errorf("key %s: got %v, want %v", tt.key, v.Kind, tt.kind)
		}
	}
}

func TestLoadDuplicateKey(t *testing.T) {
	_, err := Load("{a: 1, a: 2}")
	require.Error(t, err)

	var scanErr *ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Equal(t, 0, scanErr.Line)
	assert.Equal(t, 7, scanErr.Col)
	assert.Contains(t, scanErr.Msg, "duplicated key")
}

func TestLoadAlias(t *testing.T) {
	docs, err := Load("base: &b\n  x: 1\nchild: *b\n")
	require.NoError(t, err)

	child, ok := docs[0].Get("child")
	require.True(t, ok)
	require.Equal(t, KindMap, child.Kind)
	x, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), x.Int)

	base, _ := docs[0].Get("base")
	assert.NotSame(t, base, child)
}

func TestLoadMultiDocumentAllOrNothing(t *testing.T) {
	docs, err := Load("a: 1\n---\nb: 2\n")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = Load("a: 1\n---\nb: [1, 2\n")
	require.Error(t, err)
	assert.Nil(t, docs)
}

func TestLoadEmpty(t *testing.T) {
	docs, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCloneIsDeep(t *testing.T) {
	docs, err := Load("a:\n  - 1\n  - 2\n")
	require.NoError(t, err)

	c := docs[0].Clone()
	a, _ := c.Get("a")
	a.Seq[0].Int = 99

	orig, _ := docs[0].Get("a")
	assert.Equal(t, int64(1), orig.Seq[0].Int)
	assert.Equal(t, `{"a": [1, 2]}`, docs[0].String())
}
