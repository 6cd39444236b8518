package search

import (
	"sort"

	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

// Edge links a job to its parent.
type Edge struct {
	Child  string
	Parent string
}

// Graph is the inheritance graph of a set of jobs.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// JobGraph builds the inheritance graph of jobs. Only jobs with a parent
// contribute, together with that parent. Nodes and edges are sorted.
func JobGraph(jobs []*zuul.Job) Graph {
	nodes := make(map[string]bool)
	edges := make(map[Edge]bool)
	for _, job := range jobs {
		if job.Parent == nil {
			continue
		}
		nodes[job.Name.Value] = true
		nodes[job.Parent.Value] = true
		edges[Edge{Child: job.Name.Value, Parent: job.Parent.Value}] = true
	}

	var g Graph
	for n := range nodes {
		g.Nodes = append(g.Nodes, n)
	}
	sort.Strings(g.Nodes)
	for e := range edges {
		g.Edges = append(g.Edges, e)
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Child != g.Edges[j].Child {
			return g.Edges[i].Child < g.Edges[j].Child
		}
		return g.Edges[i].Parent < g.Edges[j].Parent
	})
	return g
}
