package zuul

import (
	"fmt"
	"log/slog"

	"github.com/zuul-tools/zuul-ls/internal/intern"
	"github.com/zuul-tools/zuul-ls/internal/parser"
	"github.com/zuul-tools/zuul-ls/internal/yamlloc"
)

// PipelineJobs is the job list a project or template attaches to a
// pipeline.
type PipelineJobs struct {
	Pipeline string
	Jobs     []parser.StringLoc
}

// ProjectTemplate is a reusable pipeline to job list mapping.
type ProjectTemplate struct {
	Name        parser.StringLoc
	Description *parser.StringLoc
	Templates   []parser.StringLoc
	Pipelines   []PipelineJobs
}

// Project applies templates and pipeline jobs to a project.
type Project struct {
	Name      *parser.StringLoc
	Templates []parser.StringLoc
	Pipelines []PipelineJobs
}

// Keys of a project or project-template that are not pipelines.
var ignoredProjectKeys = map[string]bool{
	"queue":          true,
	"vars":           true,
	"merge-mode":     true,
	"default-branch": true,
}

// ParseProjectTemplate parses the mapping under "project-template".
// Malformed pipelines are logged and skipped.
func ParseProjectTemplate(node *yamlloc.Value, path intern.Path, log *slog.Logger) (*ProjectTemplate, error) {
	body, err := parseProjectBody(node, path, "project-template", log)
	if err != nil {
		return nil, err
	}
	if body.name == nil {
		return nil, parser.NewParseError("project-template requires a name", node, path)
	}
	return &ProjectTemplate{
		Name:        *body.name,
		Description: body.description,
		Templates:   body.templates,
		Pipelines:   body.pipelines,
	}, nil
}

// ParseProject parses the mapping under "project". The name is optional.
func ParseProject(node *yamlloc.Value, path intern.Path, log *slog.Logger) (*Project, error) {
	body, err := parseProjectBody(node, path, "project", log)
	if err != nil {
		return nil, err
	}
	return &Project{Name: body.name, Templates: body.templates, Pipelines: body.pipelines}, nil
}

type projectBody struct {
	name        *parser.StringLoc
	description *parser.StringLoc
	templates   []parser.StringLoc
	pipelines   []PipelineJobs
}

func parseProjectBody(node *yamlloc.Value, path intern.Path, field string, log *slog.Logger) (*projectBody, error) {
	if node.Kind != yamlloc.KindMap {
		return nil, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), node, path)
	}

	body := &projectBody{}
	for _, p := range node.Map {
		key, ok := p.Key.AsString()
		if !ok {
			continue
		}

		switch {
		case key == "name":
			name, err := parser.ParseString(p.Value, path, "name")
			if err != nil {
				return nil, err
			}
			body.name = &name
		case key == "description":
			d, err := parser.ParseString(p.Value, path, "description")
			if err != nil {
				return nil, err
			}
			body.description = &d
		case key == "templates":
			templates, err := parser.ParseStringList(p.Value, path, "templates")
			if err != nil {
				log.Warn("skipping templates", "path", path.String(), "error", err)
				continue
			}
			body.templates = templates
		case ignoredProjectKeys[key]:
		default:
			jobs, err := parsePipeline(p.Value, path, key)
			if err != nil {
				log.Warn("skipping pipeline", "pipeline", key, "path", path.String(), "error", err)
				continue
			}
			body.pipelines = append(body.pipelines, PipelineJobs{Pipeline: key, Jobs: jobs})
		}
	}
	return body, nil
}

func parsePipeline(node *yamlloc.Value, path intern.Path, field string) ([]parser.StringLoc, error) {
	if node.Kind == yamlloc.KindMap {
		for _, p := range node.Map {
			key, _ := p.Key.AsString()
			switch key {
			case "<<":
				return parsePipeline(p.Value, path, field)
			case "jobs":
				return parsePipelineJobs(p.Value, path, key)
			}
		}
	}
	return nil, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), node, path)
}

func parsePipelineJobs(node *yamlloc.Value, path intern.Path, field string) ([]parser.StringLoc, error) {
	if node.Kind != yamlloc.KindSeq {
		return nil, nil
	}

	var jobs []parser.StringLoc
	for _, item := range node.Seq {
		switch item.Kind {
		case yamlloc.KindString:
			jobs = append(jobs, parser.NewStringLoc(item.Str, item, path))
		case yamlloc.KindMap:
			if len(item.Map) == 1 {
				if name, ok := item.Map[0].Key.AsString(); ok {
					jobs = append(jobs, parser.NewStringLoc(name, item.Map[0].Key, path))
				}
			}
		default:
			return nil, parser.NewParseError(fmt.Sprintf("Failed to parse the value of %s", field), item, path)
		}
	}
	return jobs, nil
}
