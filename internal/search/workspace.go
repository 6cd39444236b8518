package search

import (
	"context"
	"fmt"

	"github.com/zuul-tools/zuul-ls/internal/config"
	"github.com/zuul-tools/zuul-ls/internal/logging"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

// Workspace is everything discovered for one working directory.
type Workspace struct {
	WorkDir  string
	RepoDirs []string
	Elements *zuul.Elements
	Jobs     *Jobs
	Roles    []repo.Role

	roleByName map[string]repo.Role
}

// Scan discovers the repositories visible from workDir, parses their
// Zuul configuration and lists their roles.
func Scan(ctx context.Context, workDir string, cfg *config.Config) (*Workspace, error) {
	log := logging.FromContext(ctx)
	workDir = repo.ExpandPath(workDir)

	// Discover repositories
	repoDirs := repo.FindRepoDirs(cfg.RepoBaseDirs(workDir))
	log.Info("discovered repositories", "count", len(repoDirs), "work_dir", workDir)

	// Parse zuul config
	paths := repo.ZuulYAMLPaths(repoDirs)
	elems, err := zuul.ParseFiles(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("parsing zuul config: %w", err)
	}
	log.Info("parsed zuul config", "files", len(paths), "jobs", len(elems.Jobs))

	// List roles
	roles := repo.ListRoles(cfg.RoleBaseDirs(workDir))

	return NewWorkspace(workDir, repoDirs, elems, roles), nil
}

// NewWorkspace assembles a workspace from already parsed parts.
func NewWorkspace(workDir string, repoDirs []string, elems *zuul.Elements, roles []repo.Role) *Workspace {
	ws := &Workspace{
		WorkDir:    workDir,
		RepoDirs:   repoDirs,
		Elements:   elems,
		Jobs:       NewJobs(elems.Jobs),
		Roles:      roles,
		roleByName: make(map[string]repo.Role, len(roles)),
	}
	for _, r := range roles {
		if _, ok := ws.roleByName[r.Name]; !ok {
			ws.roleByName[r.Name] = r
		}
	}
	return ws
}

// Role returns the first role named name.
func (w *Workspace) Role(name string) (repo.Role, bool) {
	r, ok := w.roleByName[name]
	return r, ok
}

// LocalRoles returns the roles below the working directory.
func (w *Workspace) LocalRoles() []repo.Role {
	var roles []repo.Role
	for _, r := range w.Roles {
		if repo.IsUnder(r.Dir, w.WorkDir) {
			roles = append(roles, r)
		}
	}
	return roles
}

// ProjectTemplates returns the project templates, optionally only those
// defined below the working directory.
func (w *Workspace) ProjectTemplates(local bool) []*zuul.ProjectTemplate {
	if !local {
		return w.Elements.ProjectTemplates
	}
	var pts []*zuul.ProjectTemplate
	for _, pt := range w.Elements.ProjectTemplates {
		if repo.IsUnder(pt.Name.Path.String(), w.WorkDir) {
			pts = append(pts, pt)
		}
	}
	return pts
}
