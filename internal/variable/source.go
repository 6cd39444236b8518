// Package variable models variable definitions collected from jobs,
// roles and playbooks.
package variable

import (
	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
)

// SourceKind identifies where a variable was defined.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceJob
	SourceRole
	SourcePlaybook
)

// Source is the provenance of a variable definition.
type Source struct {
	Kind SourceKind
	// Job is set for SourceJob.
	Job parser.StringLoc
	// Role is set for SourceRole.
	Role string
	// Path is the role directory or playbook file.
	Path intern.Path
}

// JobSource marks variables declared in a job's vars.
func JobSource(name parser.StringLoc) Source {
	return Source{Kind: SourceJob, Job: name}
}

// RoleSource marks variables declared by a role.
func RoleSource(name string, path intern.Path) Source {
	return Source{Kind: SourceRole, Role: name, Path: path}
}

// PlaybookSource marks variables declared in a playbook.
func PlaybookSource(path intern.Path) Source {
	return Source{Kind: SourcePlaybook, Path: path}
}

// Label returns a short human readable name for the source.
func (s Source) Label() string {
	switch s.Kind {
	case SourceJob:
		return s.Job.Value
	case SourceRole:
		return "role:" + s.Role
	case SourcePlaybook:
		return "playbook:" + s.Path.String()
	default:
		return "-"
	}
}
