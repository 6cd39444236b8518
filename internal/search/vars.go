package search

import (
	"log/slog"
	"os"

	"github.com/zuul-tools/zuul-ls/internal/ansible"
	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

// RoleFinder resolves role names to roles on disk.
type RoleFinder interface {
	Role(name string) (repo.Role, bool)
}

var varPhases = []zuul.Phase{zuul.PhasePreRun, zuul.PhaseRun, zuul.PhasePostRun}

// JobVars returns the variables visible to a job. A name keeps the
// occurrences of its closest scope: the job's own vars along the
// hierarchy, then variables set by its playbooks, then defaults of the
// roles those playbooks invoke, then registered results.
func JobVars(jobs *Jobs, name string, roles RoleFinder) *variable.Group {
	hierarchy := jobs.Hierarchy(name)

	group := variable.NewGroup()
	for _, job := range hierarchy {
		group.Add(variable.FromTable(job.Vars))
	}

	registers := variable.NewGroup()
	var invoked []string
	seenRole := make(map[string]bool)
	seenPlaybook := make(map[string]bool)
	for _, job := range hierarchy {
		for _, phase := range varPhases {
			for _, pb := range job.Playbooks(phase) {
				if seenPlaybook[pb.Path] {
					continue
				}
				seenPlaybook[pb.Path] = true

				vars, ok := loadPlaybook(pb.Path)
				if !ok {
					continue
				}
				group.Add(vars.Defined)
				registers.Merge(vars.Registers)
				for _, r := range vars.Roles {
					if !seenRole[r.Value] {
						seenRole[r.Value] = true
						invoked = append(invoked, r.Value)
					}
				}
			}
		}
	}

	if roles != nil {
		for _, name := range invoked {
			role, ok := roles.Role(name)
			if !ok {
				continue
			}
			if defaults, ok := RoleDefaults(role); ok {
				group.Add(variable.FromTable(defaults))
			}
		}
	}

	group.Add(registers)
	return group
}

func loadPlaybook(path string) (*ansible.Vars, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("playbook not readable", "path", path, "error", err)
		return nil, false
	}
	vars, err := ansible.ParsePlaybook(string(data), path)
	if err != nil {
		slog.Warn("skipping playbook", "path", path, "error", err)
		return nil, false
	}
	return vars, true
}

// RoleDefaults parses the defaults/main file of role.
func RoleDefaults(role repo.Role) (*variable.Table, bool) {
	path, ok := role.DefaultsMain()
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	table, err := ansible.ParseDefaults(string(data), path, role.Name, role.Dir)
	if err != nil {
		slog.Warn("skipping role defaults", "path", path, "error", err)
		return nil, false
	}
	return table, true
}

// RoleTasks parses the tasks/main file of role.
func RoleTasks(role repo.Role) (*ansible.Vars, bool) {
	path, ok := role.TasksMain()
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	vars, err := ansible.ParseTasksText(string(data), path, variable.RoleSource(role.Name, intern.Intern(role.Dir)))
	if err != nil {
		slog.Warn("skipping role tasks", "path", path, "error", err)
		return nil, false
	}
	return vars, true
}

// WorkDirVars merges the vars of every job defined below workDir and of
// their ancestors, most derived first. Every occurrence is kept.
func WorkDirVars(jobs *Jobs, workDir string) *variable.Group {
	ordered := jobs.WorkDirJobs(workDir)

	group := variable.NewGroup()
	for i := len(ordered) - 1; i >= 0; i-- {
		group.Merge(variable.FromTable(ordered[i].Vars))
	}
	return group
}

// WorkDirVarRows lists the dotted vars of each work dir job in
// topological order.
func WorkDirVarRows(jobs *Jobs, workDir string) []variable.Info {
	var rows []variable.Info
	for _, job := range jobs.WorkDirJobs(workDir) {
		rows = append(rows, variable.Collect("", job.Vars, variable.JobSource(job.Name)).Infos()...)
	}
	return rows
}
