// Package config reads the tenant configuration of zuul-ls.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zuul-tools/zuul-ls/internal/repo"
)

// PathEnv overrides the default config file location.
const PathEnv = "ZUUL_SEARCH_CONFIG_PATH"

// Config maps tenant names to their directories.
type Config struct {
	Tenants map[string]*Tenant
}

// Tenant lists the directories of one Zuul tenant.
type Tenant struct {
	Name          string
	BaseDirs      []string
	ExtraBaseDirs []string
	ExtraRoleDirs []string
}

// FieldError reports a missing or malformed tenant field.
type FieldError struct {
	Tenant string
	Field  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tenant %s: %s must be a path or a list of paths", e.Tenant, e.Field)
}

// PathList is a YAML field accepting a single path or a list of paths.
type PathList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PathList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = PathList{node.Value}
		return nil
	case yaml.SequenceNode:
		var xs []string
		if err := node.Decode(&xs); err != nil {
			return err
		}
		*p = xs
		return nil
	}
	return fmt.Errorf("line %d: expected a path or a list of paths", node.Line)
}

type rawTenant struct {
	BaseDir      *PathList `yaml:"base_dir"`
	ExtraBaseDir *PathList `yaml:"extra_base_dir"`
	ExtraRoleDir *PathList `yaml:"extra_role_dir"`
}

type rawConfig struct {
	Tenant map[string]rawTenant `yaml:"tenant"`
}

// ResolvePath picks the config file: the explicit path, then the
// environment, then the user config directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zuul-ls", "config.yaml")
}

// Load reads the config file at path. A missing file is an empty config.
// Directories that do not exist are dropped.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || path == "" {
		slog.Info("config file not found", "path", path)
		return &Config{Tenants: map[string]*Tenant{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.filterMissing()
	slog.Debug("loaded config", "path", path, "tenants", len(cfg.Tenants))
	return cfg, nil
}

// Parse decodes config content and validates every tenant. Paths are
// expanded but not checked for existence.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Tenant == nil {
		return nil, errors.New("tenant is required")
	}

	cfg := &Config{Tenants: make(map[string]*Tenant, len(raw.Tenant))}
	for name, rt := range raw.Tenant {
		t, err := rt.validate(name)
		if err != nil {
			return nil, err
		}
		cfg.Tenants[name] = t
	}
	return cfg, nil
}

func (rt rawTenant) validate(name string) (*Tenant, error) {
	fields := []struct {
		field string
		value *PathList
	}{
		{"base_dir", rt.BaseDir},
		{"extra_base_dir", rt.ExtraBaseDir},
		{"extra_role_dir", rt.ExtraRoleDir},
	}
	for _, f := range fields {
		if f.value == nil {
			return nil, &FieldError{Tenant: name, Field: f.field}
		}
	}

	t := &Tenant{
		Name:          name,
		BaseDirs:      expandAll(*rt.BaseDir),
		ExtraBaseDirs: expandAll(*rt.ExtraBaseDir),
		ExtraRoleDirs: expandAll(*rt.ExtraRoleDir),
	}
	for _, shared := range []string{"zuul-shared", "zuul-trusted"} {
		for _, base := range t.BaseDirs {
			t.ExtraRoleDirs = append(t.ExtraRoleDirs, filepath.Join(base, shared))
		}
	}
	return t, nil
}

func expandAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, repo.ExpandPath(x))
	}
	return out
}

func (c *Config) filterMissing() {
	for _, t := range c.Tenants {
		t.BaseDirs = existingDirs(t.BaseDirs)
		t.ExtraBaseDirs = existingDirs(t.ExtraBaseDirs)
		t.ExtraRoleDirs = existingDirs(t.ExtraRoleDirs)
	}
}

func existingDirs(xs []string) []string {
	var out []string
	for _, x := range xs {
		if info, err := os.Stat(x); err == nil && info.IsDir() {
			out = append(out, x)
		}
	}
	return out
}

// FindTenant returns the tenant whose base directories contain workDir.
// Tenants are tried in name order.
func (c *Config) FindTenant(workDir string) (*Tenant, bool) {
	if c == nil {
		return nil, false
	}
	workDir = repo.ExpandPath(workDir)

	names := make([]string, 0, len(c.Tenants))
	for name := range c.Tenants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Tenants[name]
		for _, base := range t.BaseDirs {
			if repo.IsUnder(workDir, base) {
				return t, true
			}
		}
	}
	return nil, false
}

// RepoBaseDirs returns the directories searched for repositories: the
// tenant's base directories when workDir belongs to one, otherwise the
// parent of workDir.
func (c *Config) RepoBaseDirs(workDir string) []string {
	if t, ok := c.FindTenant(workDir); ok {
		return append(append([]string(nil), t.BaseDirs...), t.ExtraBaseDirs...)
	}
	return []string{filepath.Dir(repo.ExpandPath(workDir))}
}

// RoleBaseDirs returns the directories searched for roles: workDir and
// the tenant's extra role directories.
func (c *Config) RoleBaseDirs(workDir string) []string {
	dirs := []string{repo.ExpandPath(workDir)}
	if t, ok := c.FindTenant(workDir); ok {
		dirs = append(dirs, t.ExtraRoleDirs...)
	}
	return dirs
}
