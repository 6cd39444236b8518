package token

import (
	"path/filepath"
	"strings"

	"github.com/zuul-tools/zuul-ls/internal/repo"
)

// FileKind is the grammar a file is classified with.
type FileKind int

const (
	FileUnknown FileKind = iota
	FileZuulConfig
	FilePlaybook
	FileRoleDefaults
	FileRoleTasks
	FileRoleTemplates
)

func (k FileKind) String() string {
	switch k {
	case FileZuulConfig:
		return "zuul-config"
	case FilePlaybook:
		return "playbook"
	case FileRoleDefaults:
		return "role-defaults"
	case FileRoleTasks:
		return "role-tasks"
	case FileRoleTemplates:
		return "role-templates"
	}
	return "unknown"
}

// File is the classification of a document path. Role is set for files
// inside a role.
type File struct {
	Kind FileKind
	Role repo.Role
}

// ParseFile classifies path by its place in the repository: zuul.d and
// *zuul-extra.d hold Zuul config, playbooks/ holds playbooks, and files
// below roles/ belong to the role owning the nearest defaults, tasks or
// templates directory.
func ParseFile(path string) (File, bool) {
	path = repo.ExpandPath(path)
	root, ok := repo.RepoRoot(path)
	if !ok {
		return File{}, false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return File{}, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return File{}, false
	}

	switch {
	case parts[0] == repo.ZuulDir || strings.HasSuffix(parts[0], "zuul-extra.d"):
		return File{Kind: FileZuulConfig}, true
	case parts[0] == "playbooks":
		return File{Kind: FilePlaybook}, true
	case parts[0] != "roles":
		return File{}, false
	}

	rolesDir := filepath.Join(root, "roles")
	for i := len(parts) - 2; i >= 2; i-- {
		var kind FileKind
		switch parts[i] {
		case "defaults":
			kind = FileRoleDefaults
		case "tasks":
			kind = FileRoleTasks
		case "templates":
			kind = FileRoleTemplates
		default:
			continue
		}
		dir := filepath.Join(root, filepath.Join(parts[:i]...))
		name, err := filepath.Rel(rolesDir, dir)
		if err != nil {
			return File{}, false
		}
		return File{Kind: kind, Role: repo.Role{Name: filepath.ToSlash(name), Dir: dir}}, true
	}
	return File{}, false
}
