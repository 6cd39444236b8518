package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Parse([]byte(`
tenant:
  bar:
    base_dir: ~/foo/bar
    extra_base_dir:
      - ~/foo/another
    extra_role_dir:
      - ~/foo/another/extra_role
      - ~/foo/zar/extra-role2
`))
	require.NoError(t, err)

	want := &Tenant{
		Name:          "bar",
		BaseDirs:      []string{filepath.Join(home, "foo/bar")},
		ExtraBaseDirs: []string{filepath.Join(home, "foo/another")},
		ExtraRoleDirs: []string{
			filepath.Join(home, "foo/another/extra_role"),
			filepath.Join(home, "foo/zar/extra-role2"),
			filepath.Join(home, "foo/bar/zuul-shared"),
			filepath.Join(home, "foo/bar/zuul-trusted"),
		},
	}
	if diff := cmp.Diff(want, cfg.Tenants["bar"]); diff != "" {
		t.Errorf("tenant mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "no tenant", input: "other: 1\n"},
		{name: "missing field", input: "tenant:\n  a:\n    base_dir: /x\n    extra_base_dir: []\n", field: "extra_role_dir"},
		{name: "bad value", input: "tenant:\n  a:\n    base_dir: {x: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.field != "" {
				var fe *FieldError
				require.True(t, errors.As(err, &fe))
				assert.Equal(t, "a", fe.Tenant)
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Tenants)
}

func TestLoadFiltersAndFindsTenant(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "zuul-shared"), 0o755))

	path := filepath.Join(root, "config.yaml")
	content := "tenant:\n  t1:\n    base_dir: " + base + "\n    extra_base_dir: " + filepath.Join(root, "missing") + "\n    extra_role_dir: []\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	tenant := cfg.Tenants["t1"]
	require.NotNil(t, tenant)
	assert.Empty(t, tenant.ExtraBaseDirs)
	assert.Equal(t, []string{filepath.Join(base, "zuul-shared")}, tenant.ExtraRoleDirs)

	workDir := filepath.Join(base, "repo")
	found, ok := cfg.FindTenant(workDir)
	require.True(t, ok)
	assert.Equal(t, "t1", found.Name)
	assert.Equal(t, []string{base}, cfg.RepoBaseDirs(workDir))
	assert.Equal(t, []string{workDir, filepath.Join(base, "zuul-shared")}, cfg.RoleBaseDirs(workDir))

	other := filepath.Join(root, "elsewhere", "repo")
	_, ok = cfg.FindTenant(other)
	assert.False(t, ok)
	assert.Equal(t, []string{filepath.Join(root, "elsewhere")}, cfg.RepoBaseDirs(other))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	t.Setenv(PathEnv, "/from-env.yaml")
	assert.Equal(t, "/from-env.yaml", ResolvePath(""))
}
