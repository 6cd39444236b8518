package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

func loadField(t *testing.T, text, key string) *yamlloc.Value {
	t.Helper()
	docs, err := yamlloc.Load(text)
	require.NoError(t, err)
	v, ok := docs[0].Get(key)
	require.True(t, ok, "missing key %s", key)
	return v
}

func TestParseString(t *testing.T) {
	path := intern.Intern("/repo/zuul.d/jobs.yaml")

	s, err := ParseString(loadField(t, "name: base\n", "name"), path, "name")
	require.NoError(t, err)
	assert.Equal(t, "base", s.Value)
	assert.Equal(t, 0, s.Line)
	assert.Equal(t, 6, s.Col)
	assert.Equal(t, path, s.Path)

	_, err = ParseString(loadField(t, "name: [a]\n", "name"), path, "name")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Failed to parse the value of name", perr.Msg)
	assert.Equal(t, "/repo/zuul.d/jobs.yaml", perr.Path)
}

func TestParseOptionalString(t *testing.T) {
	path := intern.Intern("/repo/zuul.d/jobs.yaml")

	s, err := ParseOptionalString(loadField(t, "parent: null\n", "parent"), path, "parent")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseOptionalString(loadField(t, "parent: base\n", "parent"), path, "parent")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "base", s.Value)
}

func TestParseStringOrList(t *testing.T) {
	path := intern.Intern("/repo/zuul.d/jobs.yaml")

	tests := []struct {
		name string
		text string
		want []string
		err  bool
	}{
		{"single", "run: playbooks/run.yaml\n", []string{"playbooks/run.yaml"}, false},
		{"list", "run: [a.yaml, b.yaml]\n", []string{"a.yaml", "b.yaml"}, false},
		{"number", "run: 3\n", nil, true},
		{"mixed", "run: [a.yaml, 3]\n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrList(loadField(t, tt.text, "run"), path, "run")
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			var values []string
			for _, s := range got {
				values = append(values, s.Value)
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestStringLocWithValue(t *testing.T) {
	s := StringLoc{Value: "a", Path: intern.Intern("/x"), Line: 2, Col: 4}
	c := s.WithValue("a.b")
	assert.Equal(t, "a.b", c.Value)
	assert.Equal(t, 2, c.Line)
	assert.Equal(t, "a", s.Value)
	assert.Equal(t, "a.b /x:3:5", c.String())
}
