// Package zuul parses Zuul configuration elements from located YAML.
package zuul

import (
	"fmt"
	"path/filepath"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/variable"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// Phase is a job playbook phase.
type Phase string

const (
	PhasePreRun   Phase = "pre-run"
	PhaseRun      Phase = "run"
	PhasePostRun  Phase = "post-run"
	PhaseCleanRun Phase = "clean-run"
)

// Playbook is a playbook reference of a job.
type Playbook struct {
	// Ref is the literal reference as written in the job.
	Ref parser.StringLoc
	// Path is Ref resolved against the repository root.
	Path string
}

// Job is a parsed job definition.
type Job struct {
	Name        parser.StringLoc
	Description *parser.StringLoc
	Parent      *parser.StringLoc
	PreRun      []Playbook
	Run         []Playbook
	PostRun     []Playbook
	CleanRun    []Playbook
	Vars        *variable.Table
}

// Playbooks returns the playbooks of a phase.
func (j *Job) Playbooks(phase Phase) []Playbook {
	switch phase {
	case PhasePreRun:
		return j.PreRun
	case PhaseRun:
		return j.Run
	case PhasePostRun:
		return j.PostRun
	case PhaseCleanRun:
		return j.CleanRun
	}
	return nil
}

// ParseJob parses the mapping under a "job" key. Unknown keys are ignored.
func ParseJob(node *yamlloc.Value, path intern.Path) (*Job, error) {
	if node.Kind != yamlloc.KindMap {
		return nil, parser.NewParseError("Failed to parse the value of job", node, path)
	}

	job := &Job{Vars: variable.NewTable()}
	hasName := false
	for _, p := range node.Map {
		key, ok := p.Key.AsString()
		if !ok {
			return nil, parser.NewParseError("Failed to parse key", p.Key, path)
		}

		var err error
		switch key {
		case "name":
			job.Name, err = parser.ParseString(p.Value, path, "name")
			hasName = err == nil
		case "description":
			var d parser.StringLoc
			d, err = parser.ParseString(p.Value, path, "description")
			job.Description = &d
		case "parent":
			job.Parent, err = parser.ParseOptionalString(p.Value, path, "parent")
		case string(PhasePreRun):
			job.PreRun, err = parsePlaybooks(p.Value, path, key)
		case string(PhaseRun):
			job.Run, err = parsePlaybooks(p.Value, path, key)
		case string(PhasePostRun):
			job.PostRun, err = parsePlaybooks(p.Value, path, key)
		case string(PhaseCleanRun):
			job.CleanRun, err = parsePlaybooks(p.Value, path, key)
		case "vars":
			if !p.Value.IsNull() {
				job.Vars, err = variable.Parse(p.Value, path, "vars", variable.Source{})
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if !hasName {
		return nil, parser.NewParseError("job requires a name", node, path)
	}
	job.Vars = withJobSource(job.Vars, job.Name)
	return job, nil
}

// withJobSource stamps every variable with the job that declares it. The
// name is only known once the whole mapping has been read.
func withJobSource(t *variable.Table, name parser.StringLoc) *variable.Table {
	out := variable.NewTable()
	for _, v := range t.Variables() {
		v.Source = variable.JobSource(name)
		if v.Value.Kind == variable.Hash {
			v.Value.Hash = withJobSource(v.Value.Hash, name)
		}
		out.Set(v)
	}
	return out
}

func parsePlaybooks(node *yamlloc.Value, path intern.Path, field string) ([]Playbook, error) {
	var refs []parser.StringLoc
	switch node.Kind {
	case yamlloc.KindString:
		refs = append(refs, parser.NewStringLoc(node.Str, node, path))
	case yamlloc.KindSeq:
		for _, item := range node.Seq {
			ref, err := parsePlaybookItem(item, path, field)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		}
	default:
		return nil, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), node, path)
	}

	root, ok := repo.RepoRoot(path.String())
	if !ok {
		root = filepath.Dir(path.String())
	}

	playbooks := make([]Playbook, 0, len(refs))
	for _, ref := range refs {
		playbooks = append(playbooks, Playbook{Ref: ref, Path: filepath.Join(root, ref.Value)})
	}
	return playbooks, nil
}

func parsePlaybookItem(item *yamlloc.Value, path intern.Path, field string) (parser.StringLoc, error) {
	if s, ok := item.AsString(); ok {
		return parser.NewStringLoc(s, item, path), nil
	}
	if name, ok := item.Get("name"); ok {
		if s, ok := name.AsString(); ok {
			return parser.NewStringLoc(s, name, path), nil
		}
	}
	return parser.StringLoc{}, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), item, path)
}
