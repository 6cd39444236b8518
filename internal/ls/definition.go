package ls

import (
	"log/slog"
	"path/filepath"

	"go.lsp.dev/protocol"

	"github.com/zuul-tools/zuul-ls/internal/ansible"
	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/ls/token"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/search"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

// Definition returns the definition sites of tok, found in the document
// at path with content text. A miss is an empty result.
func Definition(idx *SymbolIndex, path, text string, tok *token.Token) []protocol.Location {
	switch tok.Type {
	case token.TypeVariable:
		return variableDefinition(idx, path, text, tok)
	case token.TypeJob:
		var locs []protocol.Location
		for _, loc := range idx.Jobs[tok.Value] {
			locs = append(locs, stringLocLocation(loc))
		}
		return locs
	case token.TypeProjectTemplate:
		if loc, ok := idx.ProjectTemplates[tok.Value]; ok {
			return []protocol.Location{stringLocLocation(loc)}
		}
	case token.TypeRole:
		if r, ok := idx.Role(tok.Value); ok {
			if main, ok := r.TasksMain(); ok {
				return []protocol.Location{fileLocation(main)}
			}
			return []protocol.Location{fileLocation(r.Dir)}
		}
	case token.TypePlaybook:
		root, ok := repo.RepoRoot(path)
		if !ok {
			return nil
		}
		if pb, ok := repo.FirstExisting(filepath.Join(root, tok.Value)); ok {
			return []protocol.Location{fileLocation(pb)}
		}
	}
	return nil
}

func variableDefinition(idx *SymbolIndex, path, text string, tok *token.Token) []protocol.Location {
	group := localVars(path, text, tok.File)
	if tok.RoleName != "" {
		if r, ok := idx.Role(tok.RoleName); ok {
			group.Merge(roleVars(r))
		}
	}
	group.Merge(idx.Vars)

	entry, ok := group.Lookup(tok.VarStack)
	if !ok {
		return nil
	}
	// The open file may also be part of the index.
	seen := make(map[protocol.Location]bool, len(entry.Locs))
	locs := make([]protocol.Location, 0, len(entry.Locs))
	for _, info := range entry.Locs {
		l := stringLocLocation(info.Name)
		if seen[l] {
			continue
		}
		seen[l] = true
		locs = append(locs, l)
	}
	return locs
}

// localVars collects the variables the open document can see without
// the index.
func localVars(path, text string, file token.File) *variable.Group {
	group := variable.NewGroup()
	switch file.Kind {
	case token.FilePlaybook:
		vars, err := ansible.ParsePlaybook(text, path)
		if err != nil {
			slog.Debug("playbook not parsed", "path", path, "error", err)
			break
		}
		group.Merge(vars.Group())
	case token.FileRoleDefaults:
		table, err := ansible.ParseDefaults(text, path, file.Role.Name, file.Role.Dir)
		if err != nil {
			slog.Debug("defaults not parsed", "path", path, "error", err)
			break
		}
		group.Merge(variable.FromTable(table))
	case token.FileRoleTasks:
		source := variable.RoleSource(file.Role.Name, intern.Intern(file.Role.Dir))
		if vars, err := ansible.ParseTasksText(text, path, source); err == nil {
			group.Merge(vars.Group())
		} else {
			slog.Debug("tasks not parsed", "path", path, "error", err)
		}
		if defaults, ok := search.RoleDefaults(file.Role); ok {
			group.Merge(variable.FromTable(defaults))
		}
	case token.FileRoleTemplates:
		// Templates rendering YAML may define keys of their own.
		if table, err := ansible.ParseTemplateVars(text, path); err == nil {
			group.Merge(variable.FromTable(table))
		}
		group.Merge(roleVars(file.Role))
	case token.FileZuulConfig:
		elems, err := zuul.ParseText(text, path, slog.Default())
		if err != nil {
			slog.Debug("zuul config not parsed", "path", path, "error", err)
			break
		}
		for _, job := range elems.Jobs {
			group.Merge(variable.FromTable(job.Vars))
		}
	}
	return group
}

// roleVars returns what a role's tasks and defaults define.
func roleVars(r repo.Role) *variable.Group {
	group := variable.NewGroup()
	if vars, ok := search.RoleTasks(r); ok {
		group.Merge(vars.Group())
	}
	if defaults, ok := search.RoleDefaults(r); ok {
		group.Merge(variable.FromTable(defaults))
	}
	return group
}
