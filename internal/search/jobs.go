// Package search answers batch queries over the jobs, roles and
// variables of a set of repositories.
package search

import (
	"log/slog"
	"sort"

	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

// Jobs indexes job definitions by name. A name may be defined more than
// once; the first definition in discovery order is the one followed
// when walking parents.
type Jobs struct {
	all    []*zuul.Job
	names  []string
	byName map[string][]*zuul.Job
}

// NewJobs indexes jobs, which must be in discovery order.
func NewJobs(jobs []*zuul.Job) *Jobs {
	j := &Jobs{all: jobs, byName: make(map[string][]*zuul.Job)}
	for _, job := range jobs {
		name := job.Name.Value
		if _, ok := j.byName[name]; !ok {
			j.names = append(j.names, name)
		}
		j.byName[name] = append(j.byName[name], job)
	}
	return j
}

// All returns every definition in discovery order.
func (j *Jobs) All() []*zuul.Job {
	return j.all
}

// Names returns the distinct job names in discovery order.
func (j *Jobs) Names() []string {
	return j.names
}

// ByName returns the first definition of name.
func (j *Jobs) ByName(name string) (*zuul.Job, bool) {
	defs := j.byName[name]
	if len(defs) == 0 {
		return nil, false
	}
	return defs[0], true
}

// Locations returns the name location of every definition of name.
func (j *Jobs) Locations(name string) []parser.StringLoc {
	var locs []parser.StringLoc
	for _, job := range j.byName[name] {
		locs = append(locs, job.Name)
	}
	return locs
}

// Hierarchy returns the chain from name to its root ancestor, most
// derived first. A parent already in the chain ends the walk.
func (j *Jobs) Hierarchy(name string) []*zuul.Job {
	var chain []*zuul.Job
	visited := make(map[string]bool)
	for {
		job, ok := j.ByName(name)
		if !ok {
			break
		}
		if visited[name] {
			slog.Warn("job parent cycle", "job", name)
			break
		}
		visited[name] = true
		chain = append(chain, job)

		if job.Parent == nil {
			break
		}
		name = job.Parent.Value
	}
	return chain
}

// TopoOrder returns the first definition of every job in names and of
// all their ancestors, each once, parents before children. Jobs that
// become ready at the same time are ordered by name.
func (j *Jobs) TopoOrder(names []string) []*zuul.Job {
	nodes := make(map[string]*zuul.Job)
	for _, name := range names {
		for _, job := range j.Hierarchy(name) {
			nodes[job.Name.Value] = job
		}
	}

	indegree := make(map[string]int, len(nodes))
	children := make(map[string][]string)
	for name, job := range nodes {
		if job.Parent == nil {
			continue
		}
		if _, ok := nodes[job.Parent.Value]; ok && job.Parent.Value != name {
			indegree[name]++
			children[job.Parent.Value] = append(children[job.Parent.Value], name)
		}
	}

	var ready []string
	for name := range nodes {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]*zuul.Job, 0, len(nodes))
	done := make(map[string]bool, len(nodes))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]

		order = append(order, nodes[name])
		done[name] = true
		for _, child := range children[name] {
			indegree[child]--
			if indegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	// Jobs on a parent cycle never become ready.
	if len(order) < len(nodes) {
		var rest []string
		for name := range nodes {
			if !done[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		slog.Warn("job parent cycle", "jobs", rest)
		for _, name := range rest {
			order = append(order, nodes[name])
		}
	}
	return order
}

// Under returns the definitions whose file lives below dir.
func (j *Jobs) Under(dir string) []*zuul.Job {
	var jobs []*zuul.Job
	for _, job := range j.all {
		if repo.IsUnder(job.Name.Path.String(), dir) {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// WorkDirJobs returns the jobs defined below workDir and their
// ancestors in topological order.
func (j *Jobs) WorkDirJobs(workDir string) []*zuul.Job {
	var names []string
	for _, job := range j.Under(workDir) {
		names = append(names, job.Name.Value)
	}
	return j.TopoOrder(names)
}
