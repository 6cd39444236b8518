package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuul-tools/zuul-ls/internal/variable"
)

func TestVarWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  Position
		want []string
	}{
		{name: "first segment", text: "abc {{ abc.def }}", pos: Position{0, 8}, want: []string{"abc"}},
		{name: "second segment", text: "abc {{ abc.def }}", pos: Position{0, 12}, want: []string{"abc", "def"}},
		{name: "line start", text: "abc {{ abc.def }}", pos: Position{0, 1}, want: []string{"abc"}},
		{name: "after last char", text: "abc {{ abc.def }}", pos: Position{0, 14}, want: []string{"abc", "def"}},
		{name: "between words", text: "abc {{ abc.def }}", pos: Position{0, 5}},
		{name: "second line", text: "x\n  foo.bar.baz", pos: Position{1, 7}, want: []string{"foo", "bar"}},
		{name: "line out of range", text: "x", pos: Position{3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VarWord(tt.text, tt.pos)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWordClasses(t *testing.T) {
	line := "name: subdir/nested-role-name"
	role, ok := RoleWord(line, Position{0, 8})
	require.True(t, ok)
	assert.Equal(t, "subdir/nested-role-name", role)

	name, ok := NameWord(line, Position{0, 8})
	require.True(t, ok)
	assert.Equal(t, "subdir", name)

	path, ok := PathWord("  - playbooks/run.yaml", Position{0, 10})
	require.True(t, ok)
	assert.Equal(t, "playbooks/run.yaml", path)
}

func TestInsertMarker(t *testing.T) {
	got, ok := insertMarker("ab\ncd\n", Position{1, 1})
	require.True(t, ok)
	assert.Equal(t, "ab\nc"+Marker+"d\n", got)

	got, ok = insertMarker("ab\ncd", Position{0, 10})
	require.True(t, ok)
	assert.Equal(t, "ab"+Marker+"\ncd", got)

	_, ok = insertMarker("ab", Position{2, 0})
	assert.False(t, ok)
}

func TestLocate(t *testing.T) {
	text := `
- job:
    name: test-job
    parent: parent-job
- project:
    check:
      jobs:
        - test-job
`
	tests := []struct {
		name string
		pos  Position
		keys []string
		side Side
	}{
		{name: "parent value", pos: Position{3, 12}, keys: []string{"job", "parent"}, side: SideRight},
		{name: "parent key", pos: Position{3, 5}, keys: []string{"job"}, side: SideLeft},
		{name: "element key", pos: Position{1, 3}, keys: nil, side: SideLeft},
		{name: "pipeline job", pos: Position{7, 12}, keys: []string{"project", "check", "jobs", variable.ArrayIndexKey}, side: SideRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := locate(text, tt.pos)
			require.True(t, ok)
			if diff := cmp.Diff(tt.keys, loc.keys); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.side, loc.side)
		})
	}

	_, ok := locate("a: [\n", Position{0, 1})
	assert.False(t, ok)
}

func TestClassifyZuul(t *testing.T) {
	text := `- job:
    name: test-job
    parent: parent-job
    run: playbooks/run.yaml
    vars:
      foo:
        bar: "{{ other.value }}"

- project-template:
    name: my-template
    check:
      jobs:
        - test-job

- project:
    templates:
      - my-template
    gate:
      jobs:
        - other-job:
            voting: false
`
	tests := []struct {
		name  string
		pos   Position
		typ   Type
		value string
		stack []string
	}{
		{name: "job name", pos: Position{1, 12}, typ: TypeJob, value: "test-job"},
		{name: "parent", pos: Position{2, 14}, typ: TypeJob, value: "parent-job"},
		{name: "playbook", pos: Position{3, 14}, typ: TypePlaybook, value: "playbooks/run.yaml"},
		{name: "var key", pos: Position{6, 9}, typ: TypeVariable, value: "bar", stack: []string{"foo", "bar"}},
		{name: "var reference", pos: Position{6, 23}, typ: TypeVariable, value: "value", stack: []string{"other", "value"}},
		{name: "property", pos: Position{2, 6}, typ: TypeZuulProperty, value: "parent"},
		{name: "template name", pos: Position{9, 12}, typ: TypeProjectTemplate, value: "my-template"},
		{name: "template job", pos: Position{12, 12}, typ: TypeJob, value: "test-job"},
		{name: "templates entry", pos: Position{16, 10}, typ: TypeProjectTemplate, value: "my-template"},
		{name: "job with options", pos: Position{19, 12}, typ: TypeJob, value: "other-job"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := classifyZuul(text, tt.pos)
			require.True(t, ok)
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.value, tok.Value)
			if tt.stack != nil {
				assert.Equal(t, tt.stack, tok.VarStack)
			}
		})
	}

	_, ok := classifyZuul(text, Position{20, 14})
	assert.False(t, ok, "option keys of a pipeline job are not classified")
}

func TestClassifyAnsible(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pos   Position
		typ   Type
		value string
		role  string
		side  Side
	}{
		{
			name:  "include_role name",
			text:  "\n- name: call one role\n  include_role:\n    name: subdir/nested-role-name\n",
			pos:   Position{3, 15},
			typ:   TypeRole,
			value: "subdir/nested-role-name",
			side:  SideRight,
		},
		{
			name:  "import_role name",
			text:  "\n- name: call one role\n  ansible.builtin.import_role:\n    name: subdir/nested-role-name\n",
			pos:   Position{3, 15},
			typ:   TypeRole,
			value: "subdir/nested-role-name",
			side:  SideRight,
		},
		{
			name:  "set_fact value is a variable",
			text:  "\n- name: call one role\n  set_fact:\n    name: subdir/nested-role-name\n",
			pos:   Position{3, 15},
			typ:   TypeVariable,
			value: "subdir",
			side:  SideRight,
		},
		{
			name:  "roles entry",
			text:  "\n- role: subdir/nested-role-name\n",
			pos:   Position{1, 8},
			typ:   TypeRole,
			value: "subdir/nested-role-name",
			side:  SideRight,
		},
		{
			name:  "plain scalar reference",
			text:  "abc {{ abc.def }}",
			pos:   Position{0, 8},
			typ:   TypeVariable,
			value: "abc",
			side:  SideRight,
		},
		{
			name:  "include_role vars",
			text:  "- include_role:\n    name: common\n  vars:\n    port: 80\n",
			pos:   Position{3, 6},
			typ:   TypeVariable,
			value: "port",
			role:  "common",
			side:  SideLeft,
		},
		{
			name:  "roles entry vars",
			text:  "- hosts: all\n  roles:\n    - role: web\n      vars:\n        listen: \"{{ port }}\"\n",
			pos:   Position{4, 22},
			typ:   TypeVariable,
			value: "port",
			role:  "web",
			side:  SideRight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := classifyAnsible(tt.text, tt.pos)
			require.True(t, ok)
			assert.Equal(t, tt.typ, tok.Type)
			assert.Equal(t, tt.value, tok.Value)
			assert.Equal(t, tt.role, tok.RoleName)
			assert.Equal(t, tt.side, tok.Side)
		})
	}

	_, ok := classifyAnsible("abc {{ abc.def }}", Position{0, 5})
	assert.False(t, ok)
	_, ok = classifyAnsible("- a: [\n", Position{0, 3})
	assert.False(t, ok)
}

func TestClassifyDefaults(t *testing.T) {
	tok, ok := classifyDefaults("a:\n  b: 1\n", Position{1, 2})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, tok.VarStack)
	assert.Equal(t, SideLeft, tok.Side)

	tok, ok = classifyDefaults("a: \"{{ c.d }}\"\n", Position{0, 9})
	require.True(t, ok)
	assert.Equal(t, []string{"c", "d"}, tok.VarStack)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zuul.d", "jobs.yaml"), "")
	roleDir := filepath.Join(root, "roles", "group", "web")

	tests := []struct {
		name string
		path string
		kind FileKind
		role string
	}{
		{name: "zuul config", path: filepath.Join(root, "zuul.d", "jobs.yaml"), kind: FileZuulConfig},
		{name: "extra config", path: filepath.Join(root, "my-zuul-extra.d", "jobs.yaml"), kind: FileZuulConfig},
		{name: "playbook", path: filepath.Join(root, "playbooks", "sub", "run.yaml"), kind: FilePlaybook},
		{name: "defaults", path: filepath.Join(roleDir, "defaults", "main.yaml"), kind: FileRoleDefaults, role: "group/web"},
		{name: "tasks", path: filepath.Join(roleDir, "tasks", "nested", "x.yaml"), kind: FileRoleTasks, role: "group/web"},
		{name: "templates", path: filepath.Join(roleDir, "templates", "conf.j2"), kind: FileRoleTemplates, role: "group/web"},
		{name: "other", path: filepath.Join(root, "docs", "x.yaml"), kind: FileUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := ParseFile(tt.path)
			assert.Equal(t, tt.kind != FileUnknown, ok)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.role, f.Role.Name)
		})
	}
}

func TestClassify(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "zuul.d", "jobs.yaml")
	text := "- job:\n    name: base\n    parent: root\n"
	writeFile(t, path, text)

	tok, ok := Classify(path, text, Position{2, 13})
	require.True(t, ok)
	assert.Equal(t, TypeJob, tok.Type)
	assert.Equal(t, "root", tok.Value)
	assert.Equal(t, FileZuulConfig, tok.File.Kind)

	_, ok = Classify(filepath.Join(t.TempDir(), "x.yaml"), text, Position{2, 13})
	assert.False(t, ok)
}
