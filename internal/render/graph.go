package render

import (
	"github.com/zuul-tools/zuul-ls/internal/search"
)

const graphName = "job-graph"

const graphTemplate = `@startuml
{{- if .Title}}
title {{title .Title}}
{{- end}}
{{- range .Graph.Nodes}}
rectangle {{quote .}}
{{- end}}
{{- range .Graph.Edges}}
{{quote .Child}} -up->> {{quote .Parent}}
{{- end}}
@enduml
`

type graphData struct {
	Title string
	Graph search.Graph
}

// JobGraph renders a job inheritance graph as a PlantUML document. An
// empty title is omitted.
func JobGraph(g search.Graph, title string) (string, error) {
	e := New()
	if err := e.LoadString(graphName, graphTemplate); err != nil {
		return "", err
	}
	return e.Render(graphName, graphData{Title: title, Graph: g})
}
