package repo

import (
	"os"
	"path/filepath"
	"sort"
)

// Role is an Ansible role found under a repository's roles directory.
type Role struct {
	// Name is the role path relative to roles/, e.g. "subdir/nested".
	Name string
	Dir  string
}

// TasksMain returns the role's tasks/main file if it exists.
func (r Role) TasksMain() (string, bool) {
	return FirstExisting(filepath.Join(r.Dir, "tasks", "main.yaml"), filepath.Join(r.Dir, "tasks", "main.yml"))
}

// DefaultsMain returns the role's defaults/main file if it exists.
func (r Role) DefaultsMain() (string, bool) {
	return FirstExisting(filepath.Join(r.Dir, "defaults", "main.yaml"), filepath.Join(r.Dir, "defaults", "main.yml"))
}

// ListRoles returns every role below <repo>/roles for each repository,
// sorted by name. A directory with a tasks/ child is a role; any other
// directory is searched for nested roles.
func ListRoles(repoDirs []string) []Role {
	var roles []Role
	for _, repoDir := range repoDirs {
		rolesDir := filepath.Join(repoDir, "roles")
		entries, err := os.ReadDir(rolesDir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || !shouldVisit(e.Name()) {
				continue
			}
			for _, dir := range traverse(filepath.Join(rolesDir, e.Name()), "tasks") {
				name, err := filepath.Rel(rolesDir, dir)
				if err != nil {
					continue
				}
				roles = append(roles, Role{Name: filepath.ToSlash(name), Dir: dir})
			}
		}
	}

	sort.SliceStable(roles, func(i, j int) bool {
		return roles[i].Name < roles[j].Name
	})
	return roles
}
