package zuul

import (
	"fmt"
	"log/slog"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// Keywords are the top-level configuration element kinds.
var Keywords = []string{"job", "project-template", "project", "nodeset", "queue", "pipeline", "secret", "semaphore"}

// Named is an element that is only indexed by its name.
type Named struct {
	Kind string
	Name parser.StringLoc
}

// Elements holds every configuration element found, in discovery order.
type Elements struct {
	Jobs             []*Job
	ProjectTemplates []*ProjectTemplate
	Projects         []*Project
	Nodesets         []Named
	Queues           []Named
	Pipelines        []Named
	Secrets          []Named
	Semaphores       []Named
}

// Extend appends the elements of o.
func (e *Elements) Extend(o *Elements) {
	e.Jobs = append(e.Jobs, o.Jobs...)
	e.ProjectTemplates = append(e.ProjectTemplates, o.ProjectTemplates...)
	e.Projects = append(e.Projects, o.Projects...)
	e.Nodesets = append(e.Nodesets, o.Nodesets...)
	e.Queues = append(e.Queues, o.Queues...)
	e.Pipelines = append(e.Pipelines, o.Pipelines...)
	e.Secrets = append(e.Secrets, o.Secrets...)
	e.Semaphores = append(e.Semaphores, o.Semaphores...)
}

// ParseDocuments collects the elements of already loaded documents. Each
// document is a list of single-key mappings. Elements that fail to parse
// are logged and skipped.
func ParseDocuments(docs []*yamlloc.Value, path intern.Path, log *slog.Logger) *Elements {
	elems := &Elements{}
	for _, doc := range docs {
		if doc.Kind != yamlloc.KindSeq {
			continue
		}
		for _, item := range doc.Seq {
			if err := elems.parseItem(item, path, log); err != nil {
				log.Warn("skipping element", "path", path.String(), "error", err)
			}
		}
	}
	return elems
}

func (e *Elements) parseItem(item *yamlloc.Value, path intern.Path, log *slog.Logger) error {
	if item.Kind != yamlloc.KindMap || len(item.Map) != 1 {
		return parser.NewParseError("configuration element should be a single-key mapping", item, path)
	}
	kind, ok := item.Map[0].Key.AsString()
	if !ok {
		return parser.NewParseError("Failed to parse key", item.Map[0].Key, path)
	}
	body := item.Map[0].Value

	switch kind {
	case "job":
		job, err := ParseJob(body, path)
		if err != nil {
			return err
		}
		e.Jobs = append(e.Jobs, job)
	case "project-template":
		pt, err := ParseProjectTemplate(body, path, log)
		if err != nil {
			return err
		}
		e.ProjectTemplates = append(e.ProjectTemplates, pt)
	case "project":
		p, err := ParseProject(body, path, log)
		if err != nil {
			return err
		}
		e.Projects = append(e.Projects, p)
	case "nodeset", "queue", "pipeline", "secret", "semaphore":
		n, err := parseNamed(kind, body, path)
		if err != nil {
			return err
		}
		switch kind {
		case "nodeset":
			e.Nodesets = append(e.Nodesets, n)
		case "queue":
			e.Queues = append(e.Queues, n)
		case "pipeline":
			e.Pipelines = append(e.Pipelines, n)
		case "secret":
			e.Secrets = append(e.Secrets, n)
		case "semaphore":
			e.Semaphores = append(e.Semaphores, n)
		}
	default:
		return parser.NewParseError(fmt.Sprintf("unknown configuration element %s", kind), item.Map[0].Key, path)
	}
	return nil
}

func parseNamed(kind string, node *yamlloc.Value, path intern.Path) (Named, error) {
	nameNode, ok := node.Get("name")
	if !ok {
		return Named{}, parser.NewParseError(fmt.Sprintf("%s requires a name", kind), node, path)
	}
	name, err := parser.ParseString(nameNode, path, "name")
	if err != nil {
		return Named{}, err
	}
	return Named{Kind: kind, Name: name}, nil
}
